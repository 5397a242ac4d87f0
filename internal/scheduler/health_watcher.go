package scheduler

import (
	"context"
	"time"

	"github.com/krishimitra/leafscan/internal/logger"
	"github.com/krishimitra/leafscan/internal/state"
)

// Prober is the slice of the inference client the watcher needs.
type Prober interface {
	Probe(ctx context.Context) bool
}

// HealthWatcher periodically probes the inference backend and keeps the
// last-known reachability in shared state. The result is advisory: it feeds
// /readyz and pre-emptive fallback messaging, it never gates an analysis.
type HealthWatcher struct {
	probe         Prober
	connectivity  *state.Connectivity
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewHealthWatcher creates a watcher. manualTrigger may be nil when no
// on-demand re-probe is needed.
func NewHealthWatcher(
	probe Prober,
	connectivity *state.Connectivity,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *HealthWatcher {
	return &HealthWatcher{
		probe:         probe,
		connectivity:  connectivity,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start probes once immediately, then keeps probing on the interval until
// Stop is called or ctx is cancelled.
func (hw *HealthWatcher) Start(ctx context.Context) {
	hw.Check(ctx)

	ticker := time.NewTicker(hw.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				hw.Check(ctx)
			case <-hw.manualTrigger:
				hw.logger.Debug("manual backend probe triggered")
				hw.Check(ctx)
			case <-hw.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the watcher.
func (hw *HealthWatcher) Stop() {
	close(hw.stopCh)
}

// Check runs one probe and records the outcome, logging only on transitions
// so a long outage does not flood the log.
func (hw *HealthWatcher) Check(ctx context.Context) {
	was, checkedAt := hw.connectivity.Reachable()
	now := hw.probe.Probe(ctx)
	hw.connectivity.Set(now)

	if checkedAt.IsZero() || was != now {
		if now {
			hw.logger.Info("inference backend reachable")
		} else {
			hw.logger.Warn("inference backend unreachable, diagnoses will be synthesized")
		}
	}
}
