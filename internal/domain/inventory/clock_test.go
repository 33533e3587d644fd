package inventory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Donaciones-api/internal/domain/inventory"
)

func TestClock_EstrictamenteCreciente(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clk := inventory.NewClockFrom(func() time.Time { return fixed })

	first := clk.Now()
	second := clk.Now()
	assert.Equal(t, fixed, first)
	assert.True(t, second.After(first))
	assert.Equal(t, time.Microsecond, second.Sub(first))
}

func TestClock_RelojQueRetrocede(t *testing.T) {
	ticks := []time.Time{
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
	}
	i := 0
	clk := inventory.NewClockFrom(func() time.Time { t := ticks[i]; i++; return t })

	a, b, c := clk.Now(), clk.Now(), clk.Now()
	assert.True(t, b.After(a))
	assert.Equal(t, ticks[2], c)
}

func TestClock_Concurrente(t *testing.T) {
	clk := inventory.NewClock()
	const n = 200
	out := make(chan time.Time, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out <- clk.Now()
		}()
	}
	wg.Wait()
	close(out)

	seen := map[time.Time]bool{}
	for ts := range out {
		require.False(t, seen[ts], "marca repetida %s", ts)
		seen[ts] = true
	}
	assert.Len(t, seen, n)
}
