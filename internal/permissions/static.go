package permissions

import (
	"context"
	"sync"
)

// StaticEnvironment reports a fixed OS version.
type StaticEnvironment struct {
	Version int
}

func (e StaticEnvironment) OSVersion() int { return e.Version }

// StaticQuerier is a Querier backed by an in-memory grant table. It stands in
// for the platform binding where none exists (the server process, tests).
type StaticQuerier struct {
	mu        sync.Mutex
	granted   map[string]bool
	rationale map[string]bool
}

// NewStaticQuerier starts with nothing granted and rationale suppressed.
func NewStaticQuerier() *StaticQuerier {
	return &StaticQuerier{
		granted:   make(map[string]bool),
		rationale: make(map[string]bool),
	}
}

// SetGranted records the grant truth for one permission id.
func (q *StaticQuerier) SetGranted(id string, granted bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.granted[id] = granted
}

// SetRationale records whether a rationale may still be shown for id.
func (q *StaticQuerier) SetRationale(id string, show bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rationale[id] = show
}

func (q *StaticQuerier) IsGranted(ctx context.Context, d Descriptor) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	// Normal permissions are granted at install time.
	if d.Level == Normal {
		return true, nil
	}
	if d.Level == Signature {
		return false, nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.granted[d.ID], nil
}

func (q *StaticQuerier) ShouldShowRationale(ctx context.Context, d Descriptor) bool {
	if d.Level != Dangerous {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.rationale[d.ID]
}
