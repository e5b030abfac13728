// internal/app/system/workers/statecleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ExpiredRemover deletes expired records and reports how many it removed.
type ExpiredRemover interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// StateCleanup is a background worker that deletes expired OAuth state
// tokens between runs of the MongoDB TTL monitor.
type StateCleanup struct {
	states   ExpiredRemover
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
	started  bool
}

// NewStateCleanup creates a new state cleanup worker.
//
// Parameters:
//   - states: the OAuth state store
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 5 minutes)
func NewStateCleanup(states ExpiredRemover, logger *zap.Logger, interval time.Duration) *StateCleanup {
	return &StateCleanup{
		states:   states,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one cleanup pass immediately and then begins the background
// loop.
func (w *StateCleanup) Start() {
	w.started = true
	w.cleanup()
	w.wg.Add(1)
	go w.run()
	w.log.Info("oauth state cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once, and before Start.
func (w *StateCleanup) Stop() {
	w.once.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	if w.started {
		w.log.Info("oauth state cleanup worker stopped")
	}
}

func (w *StateCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *StateCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.states.CleanupExpired(ctx)
	if err != nil {
		w.log.Warn("oauth state cleanup failed", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("removed expired oauth states", zap.Int64("count", count))
	}
}
