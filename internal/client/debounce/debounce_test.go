package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_BurstCollapsesToOneCall(t *testing.T) {
	const window = 50 * time.Millisecond

	var (
		mu      sync.Mutex
		calls   int
		firedAt time.Time
	)
	d := New(window, func() {
		mu.Lock()
		defer mu.Unlock()
		calls++
		firedAt = time.Now()
	})

	var lastTrigger time.Time
	for range 5 {
		lastTrigger = time.Now()
		d.Trigger()
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, 5*time.Millisecond)

	// Дополнительных вызовов не появляется
	time.Sleep(2 * window)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
	assert.GreaterOrEqual(t, firedAt.Sub(lastTrigger), window)
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	var calls atomic.Int32
	d := New(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Trigger()
	d.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Flush(t *testing.T) {
	var calls atomic.Int32
	d := New(time.Hour, func() { calls.Add(1) })

	assert.False(t, d.Flush())

	d.Trigger()
	assert.True(t, d.Pending())
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())

	// Повторный flush ничего не делает
	assert.False(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	var calls atomic.Int32
	d := New(10*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Pending())
}
