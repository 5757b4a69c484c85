package capstore

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Memory is an in-process CapStore. Records live for the lifetime of the
// process; it suits tests and single-node development runs.
type Memory struct {
	mu      sync.RWMutex
	records map[string]time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]time.Time)}
}

func pairKey(userID string, bannerID int64) string {
	return fmt.Sprintf("%s:%d", userID, bannerID)
}

func (m *Memory) LastShown(_ context.Context, userID string, bannerID int64) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.records[pairKey(userID, bannerID)]
	return t, ok, nil
}

func (m *Memory) SetLastShown(_ context.Context, userID string, bannerID int64, shownAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[pairKey(userID, bannerID)] = shownAt
	return nil
}

// Clear drops every record, mirroring an app data reset.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]time.Time)
}
