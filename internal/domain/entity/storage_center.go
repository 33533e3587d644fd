package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Donaciones-api/internal/domain"
)

// DayOfWeek día de la semana según ISO-8601 (1 = lunes … 7 = domingo).
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// Valid indica si d está en 1..7.
func (d DayOfWeek) Valid() bool { return d >= Monday && d <= Sunday }

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

// ClockTime hora del día en minutos desde medianoche (0..1439).
type ClockTime int

// ParseClockTime interpreta "HH:MM" (24 horas).
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, domain.Invalidf("hora inválida %q, formato esperado HH:MM", s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// TimeRange horario de apertura y cierre de un día.
type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// NewTimeRange valida que start sea anterior a end.
func NewTimeRange(start, end ClockTime) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

func (r TimeRange) Validate() error {
	if r.Start < 0 || r.End >= 24*60 {
		return domain.Invalidf("horario fuera del día: %s-%s", r.Start, r.End)
	}
	if r.Start >= r.End {
		return domain.Invalidf("la apertura (%s) debe ser anterior al cierre (%s)", r.Start, r.End)
	}
	return nil
}

// StorageCenter representa un centro de acopio donde se almacenan donaciones.
// Es dueño de sus registros de stock y de su libro de movimientos (se borran en cascada).
type StorageCenter struct {
	ID             string
	OrganizationID string // opcional; clave opaca de la organización que lo opera
	Name           string
	Description    string
	Hours          map[DayOfWeek]TimeRange
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewStorageCenter valida nombre y descripción.
func NewStorageCenter(organizationID, name, description string) (*StorageCenter, error) {
	c := &StorageCenter{OrganizationID: organizationID, Hours: map[DayOfWeek]TimeRange{}}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := c.Describe(description); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename cambia el nombre (no puede quedar en blanco).
func (c *StorageCenter) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalidf("el nombre del centro es requerido")
	}
	c.Name = name
	return nil
}

// Describe cambia la descripción (no puede quedar en blanco).
func (c *StorageCenter) Describe(description string) error {
	if strings.TrimSpace(description) == "" {
		return domain.Invalidf("la descripción del centro es requerida")
	}
	c.Description = description
	return nil
}

// UpdateDayHours reemplaza el horario del día indicado.
func (c *StorageCenter) UpdateDayHours(r TimeRange, day DayOfWeek) error {
	if !day.Valid() {
		return domain.Invalidf("día de la semana inválido: %d (1..7)", int(day))
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if c.Hours == nil {
		c.Hours = map[DayOfWeek]TimeRange{}
	}
	c.Hours[day] = r
	return nil
}

// ClearDayHours elimina el horario de un día (centro cerrado ese día).
func (c *StorageCenter) ClearDayHours(day DayOfWeek) error {
	if !day.Valid() {
		return domain.Invalidf("día de la semana inválido: %d (1..7)", int(day))
	}
	delete(c.Hours, day)
	return nil
}

// Days devuelve los días con horario en orden lunes → domingo.
func (c *StorageCenter) Days() []DayOfWeek {
	days := make([]DayOfWeek, 0, len(c.Hours))
	for d := range c.Hours {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// IsOpenAt indica si el centro está abierto en el instante t (hora local de t).
func (c *StorageCenter) IsOpenAt(t time.Time) bool {
	day := DayOfWeek(int(t.Weekday()))
	if t.Weekday() == time.Sunday {
		day = Sunday
	}
	r, ok := c.Hours[day]
	if !ok {
		return false
	}
	now := ClockTime(t.Hour()*60 + t.Minute())
	return now >= r.Start && now < r.End
}
