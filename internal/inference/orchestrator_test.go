package inference

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/krishimitra/leafscan/internal/advisory"
	"github.com/krishimitra/leafscan/internal/domain"
	"github.com/krishimitra/leafscan/internal/logger"
)

// fakeClassifier scripts Classify outcomes per attempt.
type fakeClassifier struct {
	mu      sync.Mutex
	results []classifyOutcome
	calls   int
}

type classifyOutcome struct {
	result domain.ClassificationResult
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, image []byte) (domain.ClassificationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.calls
	f.calls++
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	return f.results[idx].result, f.results[idx].err
}

func (f *fakeClassifier) Probe(ctx context.Context) bool { return true }

func newTestOrchestrator(t *testing.T, client Classifier, retries int) *Orchestrator {
	t.Helper()
	catalog, err := advisory.New("")
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return NewOrchestrator(client, catalog, logger.New("error", false), retries)
}

func TestAnalyzeMissingInput(t *testing.T) {
	fake := &fakeClassifier{results: []classifyOutcome{{}}}
	o := newTestOrchestrator(t, fake, 0)

	for _, image := range [][]byte{nil, {}} {
		_, err := o.Analyze(context.Background(), image)
		if !errors.Is(err, ErrMissingInput) {
			t.Errorf("Analyze(%v) error = %v, want ErrMissingInput", image, err)
		}
	}
	if fake.calls != 0 {
		t.Errorf("missing input must not issue a network call, got %d calls", fake.calls)
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	fake := &fakeClassifier{results: []classifyOutcome{{
		result: domain.ClassificationResult{
			DiseaseID:     domain.DiseaseLeafSpotLate,
			Confidence:    0.93,
			DetailedClass: "Tomato___Late_blight",
		},
	}}}
	o := newTestOrchestrator(t, fake, 0)

	report, err := o.Analyze(context.Background(), []byte("leaf"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Result.Synthetic {
		t.Error("real result flagged synthetic")
	}
	if !report.ServiceReachable {
		t.Error("ServiceReachable should be true on success")
	}
	if report.Advisory.DisplayName != "Late Blight (Leaf Spot)" {
		t.Errorf("advisory = %q, want the late blight record", report.Advisory.DisplayName)
	}
	if report.Result.Confidence != 0.93 {
		t.Errorf("confidence = %v", report.Result.Confidence)
	}
}

func TestAnalyzeFallsBackToSynthesisOnFailure(t *testing.T) {
	kinds := []FailureKind{FailureUnreachable, FailureServiceError, FailureMalformedResponse}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			fake := &fakeClassifier{results: []classifyOutcome{{
				err: &FailureError{Kind: kind, Err: errors.New("scripted failure")},
			}}}
			o := newTestOrchestrator(t, fake, 0)

			report, err := o.Analyze(context.Background(), []byte("leaf"))
			if err != nil {
				t.Fatalf("failure must be absorbed, got error: %v", err)
			}

			if !report.Result.Synthetic {
				t.Error("fallback result must be flagged synthetic")
			}
			if report.ServiceReachable {
				t.Error("ServiceReachable must be false on failure")
			}
			if !domain.IsKnownDisease(report.Result.DiseaseID) {
				t.Errorf("synthetic disease %q outside the closed set", report.Result.DiseaseID)
			}
			if report.Result.Confidence < 0.75 || report.Result.Confidence >= 0.95 {
				t.Errorf("synthetic confidence %v outside [0.75, 0.95)", report.Result.Confidence)
			}
			if report.Advisory.DisplayName == "" || report.Advisory.Treatment == "" {
				t.Error("synthetic result must still resolve a complete advisory")
			}
		})
	}
}

func TestAnalyzeRetriesTransportFailures(t *testing.T) {
	fake := &fakeClassifier{results: []classifyOutcome{
		{err: &FailureError{Kind: FailureUnreachable, Err: errors.New("connection refused")}},
		{result: domain.ClassificationResult{
			DiseaseID:     domain.DiseaseHealthy,
			Confidence:    0.88,
			DetailedClass: "Tomato___Healthy",
		}},
	}}
	o := newTestOrchestrator(t, fake, 1)

	report, err := o.Analyze(context.Background(), []byte("leaf"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", fake.calls)
	}
	if report.Result.Synthetic || !report.ServiceReachable {
		t.Error("retried success should be a real, reachable result")
	}
}

func TestAnalyzeDoesNotRetryServiceAnswers(t *testing.T) {
	fake := &fakeClassifier{results: []classifyOutcome{{
		err: &FailureError{Kind: FailureServiceError, Err: errors.New("model not loaded")},
	}}}
	o := newTestOrchestrator(t, fake, 3)

	report, err := o.Analyze(context.Background(), []byte("leaf"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if fake.calls != 1 {
		t.Errorf("calls = %d, want 1: a parsed answer is final", fake.calls)
	}
	if !report.Result.Synthetic {
		t.Error("service error must fall back to synthesis")
	}
}

func TestAnalyzeDefaultIsSingleRequest(t *testing.T) {
	fake := &fakeClassifier{results: []classifyOutcome{{
		err: &FailureError{Kind: FailureUnreachable, Err: errors.New("timeout")},
	}}}
	o := newTestOrchestrator(t, fake, 0)

	if _, err := o.Analyze(context.Background(), []byte("leaf")); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if fake.calls != 1 {
		t.Errorf("calls = %d, want exactly one bounded request by default", fake.calls)
	}
}

func TestAnalyzeCallsAreIndependent(t *testing.T) {
	fake := &fakeClassifier{results: []classifyOutcome{{
		result: domain.ClassificationResult{
			DiseaseID:     domain.DiseaseHealthy,
			Confidence:    0.9,
			DetailedClass: "Tomato___Healthy",
		},
	}}}
	o := newTestOrchestrator(t, fake, 0)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			if _, err := o.Analyze(context.Background(), []byte("leaf")); err != nil {
				t.Errorf("concurrent Analyze failed: %v", err)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
