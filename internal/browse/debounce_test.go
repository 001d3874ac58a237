package browse

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerRunsOnlyLastTrigger(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)
	var last atomic.Int32
	var runs atomic.Int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			runs.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs atomic.Int32

	d.Trigger(func() { runs.Add(1) })
	assert.True(t, d.Pending())
	d.Stop()
	d.Trigger(func() { runs.Add(1) })

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, runs.Load())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := NewDebouncer(0)
	assert.Equal(t, DefaultBackdropDelay, d.delay)
}
