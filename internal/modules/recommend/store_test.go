package recommend

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loganocm/Parlor/internal/types"
)

func TestStorePutOverwrites(t *testing.T) {
	store := NewStore()

	store.Put("s1", Entry{Fingerprint: "f1", Restaurants: []types.Restaurant{{ID: "a"}}})
	store.Put("s1", Entry{Fingerprint: "f2", Restaurants: []types.Restaurant{{ID: "b"}}})

	entry, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "f2", entry.Fingerprint)
	require.Len(t, entry.Restaurants, 1)
	assert.Equal(t, "b", entry.Restaurants[0].ID)
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore()
	_, ok := store.Get("absent")
	assert.False(t, ok)
}

func TestStoreConcurrentSessions(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i)
			store.Put(id, Entry{Fingerprint: id})
			if entry, ok := store.Get(id); !ok || entry.Fingerprint != id {
				t.Errorf("session %s: got %+v, ok=%v", id, entry, ok)
			}
		}(i)
	}
	wg.Wait()
}
