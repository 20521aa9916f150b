// Package worker runs syncs outside the interactive request path: one-shot
// unique work with retry-on-failure, plus an optional periodic trigger.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"jarvis/internal/ticktick"
)

// Syncer is the work the scheduler executes.
type Syncer interface {
	Sync(ctx context.Context) ticktick.SyncResult
}

// Connectivity gates execution on network availability.
type Connectivity interface {
	// Online reports whether the network is currently usable.
	Online() bool
}

// AlwaysOnline is the default connectivity for environments without a
// meaningful network signal.
type AlwaysOnline struct{}

func (AlwaysOnline) Online() bool { return true }

const syncWorkName = "ticktick_sync"

// Scheduler owns background sync execution. Enqueueing is unique work with a
// replace-on-conflict policy: a pending not-yet-run attempt is dropped in
// favor of the new one, so repeated triggers cannot grow a queue.
type Scheduler struct {
	syncer       Syncer
	connectivity Connectivity

	// Retry/backoff policy for failed syncs.
	initialBackoff time.Duration
	maxBackoff     time.Duration
	pollInterval   time.Duration

	mu      sync.Mutex
	pending map[string]*workUnit
	wg      sync.WaitGroup
}

type workUnit struct {
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler with the given backoff bounds. Zero
// durations fall back to 30s initial and 10m maximum.
func NewScheduler(syncer Syncer, connectivity Connectivity, initialBackoff, maxBackoff time.Duration) *Scheduler {
	if connectivity == nil {
		connectivity = AlwaysOnline{}
	}
	if initialBackoff <= 0 {
		initialBackoff = 30 * time.Second
	}
	if maxBackoff <= 0 {
		maxBackoff = 10 * time.Minute
	}
	return &Scheduler{
		syncer:         syncer,
		connectivity:   connectivity,
		initialBackoff: initialBackoff,
		maxBackoff:     maxBackoff,
		pollInterval:   time.Second,
		pending:        make(map[string]*workUnit),
	}
}

// EnqueueOneTimeSync schedules exactly one sync attempt under the sync work
// name, replacing any pending attempt. Execution waits for connectivity
// instead of failing, runs the sync, and keeps retrying with exponential
// backoff until success or cancellation.
func (s *Scheduler) EnqueueOneTimeSync(ctx context.Context) {
	s.enqueueUnique(ctx, syncWorkName)
}

func (s *Scheduler) enqueueUnique(ctx context.Context, name string) {
	workCtx, cancel := context.WithCancel(ctx)
	unit := &workUnit{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.pending[name]; ok {
		prev.cancel()
	}
	s.pending[name] = unit
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			if s.pending[name] == unit {
				delete(s.pending, name)
			}
			s.mu.Unlock()
			cancel()
		}()
		s.run(workCtx, name)
	}()
}

// run executes one unit of unique work to terminal success, retrying errors.
func (s *Scheduler) run(ctx context.Context, name string) {
	backoff := s.initialBackoff
	for {
		if err := s.awaitConnectivity(ctx); err != nil {
			return
		}

		switch result := s.syncer.Sync(ctx).(type) {
		case ticktick.SyncSuccess:
			return
		case ticktick.SyncError:
			if ctx.Err() != nil {
				return
			}
			log.Printf("worker: %s failed, retrying in %s: %v", name, backoff, result.Cause)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

// awaitConnectivity defers execution until the network precondition holds.
func (s *Scheduler) awaitConnectivity(ctx context.Context) error {
	for !s.connectivity.Online() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
	return ctx.Err()
}

// RunPeriodic re-enqueues a sync on every tick until ctx is cancelled.
// Blocks; run it on its own goroutine.
func (s *Scheduler) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EnqueueOneTimeSync(ctx)
		}
	}
}

// Wait blocks until every in-flight work unit has returned. Test and
// shutdown helper.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
