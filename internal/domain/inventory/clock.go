package inventory

import (
	"sync"
	"time"
)

// Clock entrega marcas de tiempo estrictamente crecientes dentro del proceso,
// aunque el reloj de pared retroceda o dos llamadas caigan en el mismo instante.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

// NewClock construye el reloj sobre time.Now.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockFrom construye el reloj sobre una fuente arbitraria (tests).
func NewClockFrom(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Now devuelve una marca posterior a todas las anteriores.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}
