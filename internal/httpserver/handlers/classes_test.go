package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krishimitra/leafscan/internal/domain"
)

func TestClassesHandler(t *testing.T) {
	handler := Classes(testDeps(t, &stubClassifier{}))

	req := httptest.NewRequest(http.MethodGet, "/classes", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp classesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	for _, id := range domain.KnownDiseases() {
		entry, ok := resp.Diseases[id]
		if !ok {
			t.Errorf("catalog listing is missing %q", id)
			continue
		}
		if entry.Advice.DisplayName == "" {
			t.Errorf("%q has empty advice", id)
		}
		if entry.DetailedClass == "" {
			t.Errorf("%q has no detailed class mapping", id)
		}
	}
}

func TestReadyzHandlerReflectsConnectivity(t *testing.T) {
	d := testDeps(t, &stubClassifier{})
	handler := Readyz(d)

	d.Connectivity.Set(false)
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var resp readyzResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Ready {
		t.Error("service stays ready even with the backend down")
	}
	if resp.BackendReachable {
		t.Error("backend_reachable should be false")
	}

	d.Connectivity.Set(true)
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.BackendReachable {
		t.Error("backend_reachable should be true after a good probe")
	}
}

func TestStatsHandlerDisabled(t *testing.T) {
	handler := Stats(testDeps(t, &stubClassifier{})) // Store is nil

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when stats are disabled", rec.Code)
	}
}
