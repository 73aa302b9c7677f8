package scopelog

import (
	"sync"
	"time"
)

// IntervalStats holds the running statistics of one interval identity.
type IntervalStats struct {
	Count   int           `json:"count" msgpack:"count"`
	Total   time.Duration `json:"total" msgpack:"total"`
	Min     time.Duration `json:"min" msgpack:"min"`
	Max     time.Duration `json:"max" msgpack:"max"`
	Average time.Duration `json:"average" msgpack:"average"`
}

// add returns the statistics after one more measurement of d.
func (s IntervalStats) add(d time.Duration) IntervalStats {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if s.Count == 0 || d > s.Max {
		s.Max = d
	}
	s.Count++
	s.Total += d
	s.Average = s.Total / time.Duration(s.Count)
	return s
}

// IntervalStore maps interval identities to their accumulated statistics.
type IntervalStore struct {
	mu    sync.Mutex
	stats map[string]IntervalStats
}

// NewIntervalStore returns an empty store.
func NewIntervalStore() *IntervalStore {
	return &IntervalStore{stats: make(map[string]IntervalStats)}
}

// Get returns the statistics for id. The first lookup of an unknown id stores
// a zero entry.
func (s *IntervalStore) Get(id string) IntervalStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stats[id]
	if !ok {
		s.stats[id] = st
	}
	return st
}

// Update accumulates d into the entry for id and returns the new value.
func (s *IntervalStore) Update(id string, d time.Duration) IntervalStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats[id].add(d)
	s.stats[id] = st
	return st
}

// All returns a copy of every entry.
func (s *IntervalStore) All() map[string]IntervalStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]IntervalStats, len(s.stats))
	for k, v := range s.stats {
		out[k] = v
	}
	return out
}
