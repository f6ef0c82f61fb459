package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRegistry_Reserve(t *testing.T) {
	r := NewIDRegistry()

	require.True(t, r.Reserve("marker-city-1-abc"))
	assert.False(t, r.Reserve("marker-city-1-abc"), "second reservation of the same id must fail")
	assert.True(t, r.Has("marker-city-1-abc"))
	assert.False(t, r.Has("route-main-1-abc"))
}

func TestIDRegistry_ConcurrentReserve(t *testing.T) {
	r := NewIDRegistry()

	var wg sync.WaitGroup
	won := make(chan string, 1000)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := fmt.Sprintf("id-%d", j)
				if r.Reserve(id) {
					won <- id
				}
			}
		}()
	}
	wg.Wait()
	close(won)

	// Each id should have been granted to exactly one goroutine.
	seen := make(map[string]int)
	for id := range won {
		seen[id]++
	}
	assert.Len(t, seen, 100)
	for id, n := range seen {
		assert.Equal(t, 1, n, "id %s reserved more than once", id)
	}
	assert.Equal(t, 100, r.Len())
}
