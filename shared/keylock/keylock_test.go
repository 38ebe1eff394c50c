package keylock_test

import (
	"sync"
	"tavolo/shared/keylock"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLockSerializesSameKey(t *testing.T) {
	locks := keylock.New()

	const workers = 50

	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			locks.Lock("restaurant-1", "2025-06-01")
			defer locks.Unlock("restaurant-1", "2025-06-01")

			counter++
		}()
	}

	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyLockIndependentKeys(t *testing.T) {
	locks := keylock.New()

	locks.Lock("restaurant-1", "2025-06-01")

	done := make(chan struct{})

	go func() {
		locks.Lock("restaurant-2", "2025-06-01")
		locks.Unlock("restaurant-2", "2025-06-01")
		close(done)
	}()

	// A different key must not block on the held lock.
	<-done

	locks.Unlock("restaurant-1", "2025-06-01")
}
