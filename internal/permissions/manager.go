package permissions

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Manager owns the permission snapshot. It is the only writer; readers get
// immutable AppState values and may subscribe to replacements via Watch.
type Manager struct {
	env     Environment
	querier Querier

	mu       sync.Mutex
	state    AppState
	watchers map[chan AppState]struct{}
}

// NewManager builds a manager over the full catalog. The initial snapshot has
// every applicable permission NotRequested; call Refresh to pick up OS truth.
func NewManager(env Environment, querier Querier) *Manager {
	m := &Manager{
		env:      env,
		querier:  querier,
		watchers: make(map[chan AppState]struct{}),
	}
	m.state = m.emptyState(time.Now())
	return m
}

func (m *Manager) emptyState(now time.Time) AppState {
	osVersion := m.env.OSVersion()
	var groups []GroupState
	for _, fg := range AllFeatureGroups() {
		gs := GroupState{Group: fg, Required: true}
		for _, d := range Catalog {
			if d.Group != fg {
				continue
			}
			status := NotRequested
			if !d.ApplicableTo(osVersion) {
				status = NotApplicable
			}
			gs.Records = append(gs.Records, Record{Descriptor: d, Status: status})
		}
		if len(gs.Records) > 0 {
			groups = append(groups, gs)
		}
	}
	return AppState{Groups: groups, UpdateTime: now}
}

// State returns the current snapshot.
func (m *Manager) State() AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Watch subscribes to snapshot replacements. The returned channel receives
// the current snapshot immediately, then every published replacement. The
// subscription ends when ctx is cancelled.
func (m *Manager) Watch(ctx context.Context) <-chan AppState {
	ch := make(chan AppState, 1)
	m.mu.Lock()
	ch <- m.state
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, ch)
		m.mu.Unlock()
	}()
	return ch
}

// publish replaces the snapshot. Callers must hold m.mu.
func (m *Manager) publish(next AppState) {
	m.state = next
	for ch := range m.watchers {
		// Drop the stale value if the watcher hasn't drained it; the
		// channel always holds the newest snapshot.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next:
		default:
		}
	}
}

// Refresh re-derives the whole snapshot from live OS truth. Permissions whose
// minimum OS version exceeds the environment's are NotApplicable regardless
// of what the querier would say. Granted truth comes from the querier; a
// query error leaves that record non-granted rather than failing the refresh.
func (m *Manager) Refresh(ctx context.Context) (AppState, error) {
	osVersion := m.env.OSVersion()
	now := time.Now()

	// Query outside the lock; reads are not mutually exclusive with
	// anything and may suspend per descriptor.
	granted := make(map[string]bool, len(Catalog))
	for _, d := range Catalog {
		if err := ctx.Err(); err != nil {
			return AppState{}, err
		}
		if !d.ApplicableTo(osVersion) {
			continue
		}
		ok, err := m.querier.IsGranted(ctx, d)
		if err != nil {
			ok = false
		}
		granted[d.ID] = ok
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.state
	next := AppState{Groups: make([]GroupState, len(prev.Groups)), UpdateTime: now}
	for i, g := range prev.Groups {
		ng := GroupState{Group: g.Group, Required: g.Required, Records: make([]Record, len(g.Records))}
		for j, r := range g.Records {
			nr := r
			if !r.Descriptor.ApplicableTo(osVersion) {
				nr.Status = NotApplicable
			} else if granted[r.Descriptor.ID] {
				nr.Status = Granted
			} else if r.Status == Granted || r.Status == NotApplicable {
				// Lost a grant (or the refresh cannot see a prior
				// request): back to the steady-state default. Denied
				// vs permanently denied is only observable at request
				// time, so those statuses survive a refresh.
				nr.Status = NotRequested
			}
			ng.Records[j] = nr
		}
		next.Groups[i] = ng
	}

	m.publish(next)
	return next, nil
}

// UpdateRecord applies a concrete grant/deny result for one permission:
// status and rationale change, the request count increments, and the request
// time is stamped. Every other record is carried over unchanged.
func (m *Manager) UpdateRecord(id string, status Status, canShowRationale bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	prev := m.state
	found := false
	next := AppState{Groups: make([]GroupState, len(prev.Groups)), UpdateTime: now}
	for i, g := range prev.Groups {
		ng := g
		for j, r := range g.Records {
			if r.Descriptor.ID != id {
				continue
			}
			found = true
			records := make([]Record, len(g.Records))
			copy(records, g.Records)
			r.Status = status
			r.CanShowRationale = canShowRationale
			r.LastRequestTime = now
			r.RequestCount++
			records[j] = r
			ng.Records = records
		}
		next.Groups[i] = ng
	}
	if !found {
		return fmt.Errorf("unknown permission: %s", id)
	}

	m.publish(next)
	return nil
}

// IsGranted reports whether the snapshot records the permission as granted.
func (m *Manager) IsGranted(id string) bool {
	r, ok := m.State().Record(id)
	return ok && r.Status == Granted
}

// NeedsAction returns records awaiting user action at the given protection
// level (AnyLevel for all), ordered for display.
func (m *Manager) NeedsAction(level ProtectionLevel) []Record {
	records := m.State().NeedsAction(level)
	SortRecords(records)
	return records
}

// GroupsByPriority returns the group states in display order.
func (m *Manager) GroupsByPriority() []GroupState {
	groups := m.State().Groups
	out := make([]GroupState, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Group.Priority() < out[j].Group.Priority()
	})
	return out
}

// SortRecords orders records by feature group priority, then protection
// level. Display order only; grant semantics do not depend on it.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		gi, gj := records[i].Descriptor.Group.Priority(), records[j].Descriptor.Group.Priority()
		if gi != gj {
			return gi < gj
		}
		return records[i].Descriptor.Level < records[j].Descriptor.Level
	})
}
