package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSteppingClock_StartsAtEpoch(t *testing.T) {
	clock := NewSteppingClock(time.Time{}, 0)
	assert.True(t, Epoch.Equal(clock.Now()))
	assert.Equal(t, int64(1), clock.Calls())
}

func TestSteppingClock_Advances(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := NewSteppingClock(start, 30*time.Second)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start.Add(30*time.Second), clock.Now())
	assert.Equal(t, start.Add(60*time.Second), clock.Now())
}

func TestSteppingClock_Reset(t *testing.T) {
	clock := NewSteppingClock(time.Time{}, time.Hour)
	clock.Now()
	clock.Now()

	clock.Reset()
	assert.Equal(t, int64(0), clock.Calls())
	assert.True(t, Epoch.Equal(clock.Now()))
}

func TestSteppingClock_ThreadSafe(t *testing.T) {
	clock := NewSteppingClock(time.Time{}, time.Second)
	const numGoroutines = 50
	const callsPerGoroutine = 20

	var mu sync.Mutex
	seen := make(map[int64]bool)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				offset := int64(clock.Now().Sub(Epoch) / time.Second)
				mu.Lock()
				assert.False(t, seen[offset], "duplicate instant %d", offset)
				seen[offset] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, numGoroutines*callsPerGoroutine)
}

func TestSteppingClock_Deterministic(t *testing.T) {
	clock1 := NewSteppingClock(time.Time{}, time.Minute)
	clock2 := NewSteppingClock(time.Time{}, time.Minute)

	for i := 0; i < 100; i++ {
		assert.Equal(t, clock1.Now(), clock2.Now())
	}
}
