package permissions

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// pendingBatch tracks one in-flight runtime-dialog request.
type pendingBatch struct {
	id          string
	descriptors []Descriptor
	result      chan map[string]bool
}

// LauncherManager coordinates runtime-dialog permission requests. The OS
// dialog launcher must be registered with Initialize before the hosting UI
// becomes active; requests made before that resolve all-denied instead of
// failing. At most one batch is in flight: launching a new batch abandons a
// pending one by resolving it all-denied (last-request-wins).
type LauncherManager struct {
	manager *Manager
	querier Querier

	mu       sync.Mutex
	launcher DialogLauncher
	pending  *pendingBatch
}

// NewLauncherManager wires the dialog orchestration to the state manager.
func NewLauncherManager(manager *Manager, querier Querier) *LauncherManager {
	return &LauncherManager{manager: manager, querier: querier}
}

// Initialize registers the pre-created OS launcher. Must run before any
// request; calling it again replaces the launcher.
func (l *LauncherManager) Initialize(launcher DialogLauncher) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launcher = launcher
}

// Initialized reports whether a launcher is registered.
func (l *LauncherManager) Initialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launcher != nil
}

// RequestRuntimePermissions launches a dialog batch for the dangerous
// permissions in descriptors and blocks until the OS delivers results or ctx
// is cancelled. Non-dangerous descriptors are ignored. The returned map has
// one entry per requested descriptor id.
//
// Without an initialized launcher every descriptor maps to false; no error,
// per the fail-soft contract.
func (l *LauncherManager) RequestRuntimePermissions(ctx context.Context, descriptors []Descriptor) (map[string]bool, error) {
	runtime := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Level == Dangerous {
			runtime = append(runtime, d)
		}
	}

	l.mu.Lock()
	if l.launcher == nil {
		l.mu.Unlock()
		return allDenied(descriptors), nil
	}
	if len(runtime) == 0 {
		l.mu.Unlock()
		return map[string]bool{}, nil
	}

	// Abandon a pending batch so its caller unblocks; the OS callback for
	// it will be ignored by id.
	if l.pending != nil {
		l.pending.result <- allDenied(l.pending.descriptors)
	}

	batch := &pendingBatch{
		id:          uuid.NewString(),
		descriptors: runtime,
		result:      make(chan map[string]bool, 1),
	}
	l.pending = batch
	launcher := l.launcher
	l.mu.Unlock()

	ids := make([]string, len(runtime))
	for i, d := range runtime {
		ids[i] = d.ID
	}
	launcher.Launch(ids, func(results map[string]bool) {
		l.deliver(batch.id, results)
	})

	select {
	case results := <-batch.result:
		return results, nil
	case <-ctx.Done():
		l.mu.Lock()
		if l.pending == batch {
			l.pending = nil
		}
		l.mu.Unlock()
		return nil, ctx.Err()
	}
}

// RequestRuntimePermission requests a single dangerous permission.
func (l *LauncherManager) RequestRuntimePermission(ctx context.Context, d Descriptor) (bool, error) {
	results, err := l.RequestRuntimePermissions(ctx, []Descriptor{d})
	if err != nil {
		return false, err
	}
	return results[d.ID], nil
}

// deliver routes an OS result back to its batch and folds each outcome into
// the state manager. Results for an abandoned batch are dropped.
func (l *LauncherManager) deliver(batchID string, results map[string]bool) {
	l.mu.Lock()
	batch := l.pending
	if batch == nil || batch.id != batchID {
		l.mu.Unlock()
		return
	}
	l.pending = nil
	l.mu.Unlock()

	out := make(map[string]bool, len(batch.descriptors))
	for _, d := range batch.descriptors {
		granted := results[d.ID]
		out[d.ID] = granted

		rationale := l.querier.ShouldShowRationale(context.Background(), d)
		status := Granted
		if !granted {
			if rationale {
				status = Denied
			} else {
				status = PermanentlyDenied
			}
		}
		l.manager.UpdateRecord(d.ID, status, rationale)
	}

	batch.result <- out
}

func allDenied(descriptors []Descriptor) map[string]bool {
	out := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		out[d.ID] = false
	}
	return out
}
