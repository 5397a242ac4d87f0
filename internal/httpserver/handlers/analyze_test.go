package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krishimitra/leafscan/internal/advisory"
	"github.com/krishimitra/leafscan/internal/domain"
	"github.com/krishimitra/leafscan/internal/httpserver/deps"
	"github.com/krishimitra/leafscan/internal/inference"
	"github.com/krishimitra/leafscan/internal/logger"
	"github.com/krishimitra/leafscan/internal/state"
)

type stubClassifier struct {
	result domain.ClassificationResult
	err    error
}

func (s *stubClassifier) Classify(ctx context.Context, image []byte) (domain.ClassificationResult, error) {
	return s.result, s.err
}

func (s *stubClassifier) Probe(ctx context.Context) bool { return s.err == nil }

func testDeps(t *testing.T, client inference.Classifier) deps.Deps {
	t.Helper()
	catalog, err := advisory.New("")
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	log := logger.New("error", false)
	return deps.Deps{
		Logger:         log,
		Orchestrator:   inference.NewOrchestrator(client, catalog, log, 0),
		Catalog:        catalog,
		Connectivity:   state.NewConnectivity(),
		MaxUploadBytes: 10 << 20,
	}
}

func multipartImage(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("failed to write payload: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestAnalyzeHandlerSuccess(t *testing.T) {
	client := &stubClassifier{result: domain.ClassificationResult{
		DiseaseID:     domain.DiseaseLeafSpotLate,
		Confidence:    0.93,
		DetailedClass: "Tomato___Late_blight",
	}}
	handler := Analyze(testDeps(t, client))

	body, contentType := multipartImage(t, "image", "leaf.jpg", []byte("fake-jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Disease != domain.DiseaseLeafSpotLate {
		t.Errorf("disease = %q", resp.Disease)
	}
	if resp.Synthetic {
		t.Error("real diagnosis flagged synthetic")
	}
	if !resp.ServiceReachable {
		t.Error("service_reachable should be true")
	}
	if resp.DisplayLabel != "Late blight" {
		t.Errorf("display_label = %q, want crop prefix stripped", resp.DisplayLabel)
	}
	if resp.Advice.DisplayName != "Late Blight (Leaf Spot)" {
		t.Errorf("advice display name = %q", resp.Advice.DisplayName)
	}
}

func TestAnalyzeHandlerBackendDown(t *testing.T) {
	client := &stubClassifier{err: &inference.FailureError{
		Kind: inference.FailureUnreachable,
		Err:  errors.New("connection refused"),
	}}
	handler := Analyze(testDeps(t, client))

	body, contentType := multipartImage(t, "image", "leaf.png", []byte("fake-png"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("backend outage must still produce a diagnosis, status = %d", rec.Code)
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Synthetic {
		t.Error("fallback diagnosis must be flagged synthetic")
	}
	if resp.ServiceReachable {
		t.Error("service_reachable must be false when the backend is down")
	}
	if resp.Advice.Treatment == "" || len(resp.Advice.Prevention) == 0 {
		t.Error("fallback diagnosis must carry complete advice")
	}
}

func TestAnalyzeHandlerMissingFile(t *testing.T) {
	handler := Analyze(testDeps(t, &stubClassifier{}))

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString("not multipart"))
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeHandlerRejectsBadExtension(t *testing.T) {
	handler := Analyze(testDeps(t, &stubClassifier{}))

	body, contentType := multipartImage(t, "image", "report.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for non-image upload", rec.Code)
	}
}

func TestAnalyzeHandlerEmptyImage(t *testing.T) {
	handler := Analyze(testDeps(t, &stubClassifier{}))

	body, contentType := multipartImage(t, "image", "leaf.jpg", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty image payload", rec.Code)
	}
}
