package server

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficdash/analytics"
)

func TestSessionStore_GetReturnsSnapshot(t *testing.T) {
	store := NewSessionStore()

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	store.SetFilters("ops", analytics.Filters{Start: &start, ViolationTypes: []string{"과속"}})

	snapshot := store.Get("ops")
	snapshot.Filters = analytics.Filters{}
	snapshot.Cameras = []CameraDevice{{ManageNo: "F0001"}}

	// Mutating the snapshot must not leak into the store.
	stored := store.Get("ops")
	require.NotNil(t, stored.Filters.Start)
	assert.Equal(t, []string{"과속"}, stored.Filters.ViolationTypes)
	assert.Nil(t, stored.Cameras)
}

func TestSessionStore_DefaultSessionFallback(t *testing.T) {
	store := NewSessionStore()

	store.SetFilters("", analytics.Filters{ViolationTypes: []string{"신호위반"}})
	assert.Equal(t, []string{"신호위반"}, store.Get(DefaultSessionID).Filters.ViolationTypes)
	assert.Equal(t, []string{"신호위반"}, store.Get("").Filters.ViolationTypes)
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := fmt.Sprintf("sess-%d", n%2)
				store.SetFilters(id, analytics.Filters{ViolationTypes: []string{"과속"}})
				_ = store.Get(id).Filters.ViolationTypes
				store.SetCameras(id, []CameraDevice{{ManageNo: "F0001"}})
				_ = store.Get(id).Cameras
				store.Reset(id)
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, store.Get("sess-0").Filters.ViolationTypes)
}
