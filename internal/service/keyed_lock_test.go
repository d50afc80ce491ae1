package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLock_MutualExclusion(t *testing.T) {
	locks := newKeyedLock()

	const workers = 32
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			locks.Lock(1)
			defer locks.Unlock(1)
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyedLock_EntriesAreReleased(t *testing.T) {
	locks := newKeyedLock()

	locks.Lock(1)
	locks.Lock(2)
	locks.Unlock(2)
	locks.Unlock(1)

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "released entries must not linger in the map")
}
