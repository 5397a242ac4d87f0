package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/krishimitra/leafscan/internal/logger"
	"github.com/krishimitra/leafscan/internal/state"
)

type fakeProber struct {
	reachable bool
	calls     int
}

func (f *fakeProber) Probe(ctx context.Context) bool {
	f.calls++
	return f.reachable
}

func TestCheckRecordsOutcome(t *testing.T) {
	log := logger.New("error", false)
	connectivity := state.NewConnectivity()
	probe := &fakeProber{reachable: true}

	hw := NewHealthWatcher(probe, connectivity, log, time.Minute, nil)
	hw.Check(context.Background())

	reachable, checkedAt := connectivity.Reachable()
	if !reachable {
		t.Error("expected reachable after successful probe")
	}
	if checkedAt.IsZero() {
		t.Error("check time not recorded")
	}

	probe.reachable = false
	hw.Check(context.Background())
	if reachable, _ := connectivity.Reachable(); reachable {
		t.Error("expected unreachable after failed probe")
	}
}

func TestStartProbesImmediately(t *testing.T) {
	log := logger.New("error", false)
	connectivity := state.NewConnectivity()
	probe := &fakeProber{reachable: true}

	hw := NewHealthWatcher(probe, connectivity, log, time.Hour, nil)
	hw.Start(context.Background())
	defer hw.Stop()

	if probe.calls == 0 {
		t.Error("Start should probe once before the first tick")
	}
	if reachable, _ := connectivity.Reachable(); !reachable {
		t.Error("initial probe outcome not recorded")
	}
}

func TestManualTrigger(t *testing.T) {
	log := logger.New("error", false)
	connectivity := state.NewConnectivity()
	probe := &fakeProber{reachable: false}
	trigger := make(chan struct{}, 1)

	hw := NewHealthWatcher(probe, connectivity, log, time.Hour, trigger)
	hw.Start(context.Background())
	defer hw.Stop()

	probe.reachable = true
	trigger <- struct{}{}

	deadline := time.After(2 * time.Second)
	for {
		if reachable, _ := connectivity.Reachable(); reachable {
			return
		}
		select {
		case <-deadline:
			t.Fatal("manual trigger did not cause a re-probe")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
