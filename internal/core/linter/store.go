package linter

import "sync"

// Status is the load status of one version's analyzer report.
type Status int

const (
	StatusUnloaded Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// LoadState is the state of one version's report.
type LoadState struct {
	Status Status
	Index  *Index
	Err    error
}

// Loading reports whether a fetch is in flight.
func (s LoadState) Loading() bool { return s.Status == StatusLoading }

// Store holds the report load state for every version id seen in the
// session. States of different versions are independent.
type Store struct {
	mu     sync.Mutex
	states map[int]LoadState
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{states: make(map[int]LoadState)}
}

// State returns the state for versionID. Unknown ids are unloaded.
func (s *Store) State(versionID int) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[versionID]
}

// BeginFetch marks versionID as loading. It returns false, leaving the state
// untouched, when a fetch is already in flight or the report is loaded.
func (s *Store) BeginFetch(versionID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.states[versionID].Status {
	case StatusLoading, StatusLoaded:
		return false
	}
	s.states[versionID] = LoadState{Status: StatusLoading}
	return true
}

// Resolve stores the index for versionID. Results for a version that is not
// loading (reset or already settled) are discarded and false is returned.
func (s *Store) Resolve(versionID int, idx Index) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.states[versionID].Status != StatusLoading {
		return false
	}
	s.states[versionID] = LoadState{Status: StatusLoaded, Index: &idx}
	return true
}

// Fail records a fetch failure for versionID.
func (s *Store) Fail(versionID int, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.states[versionID].Status != StatusLoading {
		return false
	}
	s.states[versionID] = LoadState{Status: StatusFailed, Err: err}
	return true
}
