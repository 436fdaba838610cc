// Package loader decides when the analyzer report for a version must be
// fetched. It reads per-version load state and emits at most one fetch
// intent per unloaded version.
package loader

import (
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/version"
)

// Intent asks the transport to fetch the report for a version.
type Intent struct {
	VersionID      int
	ReportLocation string
}

// FetchFunc starts a fetch for an intent. It must not block.
type FetchFunc func(versionID int, reportLocation string)

// StateStore is the subset of linter.Store the coordinator needs.
type StateStore interface {
	State(versionID int) linter.LoadState
	BeginFetch(versionID int) bool
}

// Evaluate returns the fetch intent for v given its load state. It fires only
// when the version is unloaded: no index and no fetch in flight. Loaded and
// failed versions never fire; failed ones are retried explicitly.
func Evaluate(v version.Version, state linter.LoadState) (Intent, bool) {
	if state.Status != linter.StatusUnloaded || state.Index != nil {
		return Intent{}, false
	}
	return Intent{VersionID: v.ID, ReportLocation: v.ReportLocation}, true
}

// Coordinator re-evaluates on every mount and update and dispatches intents.
// Re-evaluating is idempotent because the store is marked loading before the
// fetch function runs.
type Coordinator struct {
	store StateStore
	fetch FetchFunc
}

// New returns a Coordinator dispatching through fetch.
func New(store StateStore, fetch FetchFunc) *Coordinator {
	return &Coordinator{store: store, fetch: fetch}
}

// Sync evaluates v and dispatches a fetch if needed. It reports whether a
// fetch was started.
func (c *Coordinator) Sync(v version.Version) bool {
	intent, ok := Evaluate(v, c.store.State(v.ID))
	if !ok {
		return false
	}
	if !c.store.BeginFetch(intent.VersionID) {
		return false
	}
	c.fetch(intent.VersionID, intent.ReportLocation)
	return true
}

// Retry restarts a failed fetch for v. Versions in any other state are left
// alone.
func (c *Coordinator) Retry(v version.Version) bool {
	if c.store.State(v.ID).Status != linter.StatusFailed {
		return false
	}
	if !c.store.BeginFetch(v.ID) {
		return false
	}
	c.fetch(v.ID, v.ReportLocation)
	return true
}
