package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/krishimitra/leafscan/internal/domain"
	"github.com/krishimitra/leafscan/internal/utils"
)

const (
	healthPath  = "/health"
	analyzePath = "/analyze"
	// imageField is the multipart form field the backend reads the upload from.
	imageField = "image"

	// maxResponseBytes caps how much of a response body we are willing to
	// read; the expected payload is a few hundred bytes of JSON.
	maxResponseBytes = 1 << 20
)

// Client is the HTTP client for the remote classification service. It owns
// the wire format and the failure classification; it never fabricates
// results itself.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	probeTimeout   time.Duration
	analyzeTimeout time.Duration
}

// ClientOptions configures the inference client. Zero timeouts fall back to
// the documented defaults (probe 5s, analyze 30s).
type ClientOptions struct {
	BaseURL        string
	ProbeTimeout   time.Duration
	AnalyzeTimeout time.Duration
}

// NewClient creates a client for the service at opts.BaseURL.
func NewClient(opts ClientOptions) *Client {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}
	if opts.AnalyzeTimeout <= 0 {
		opts.AnalyzeTimeout = 30 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		probeTimeout:   opts.ProbeTimeout,
		analyzeTimeout: opts.AnalyzeTimeout,
		// Timeouts are applied per call via context so a caller-supplied
		// cancellation behaves exactly like a timeout.
		httpClient: &http.Client{},
	}
}

// Probe checks whether the service's health endpoint answers within the
// probe timeout. True only on an explicit 200; every other outcome, network
// error and timeout included, collapses to false. Probe never returns an
// error - it is advisory and must not block an analysis attempt.
func (c *Client) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, http.NoBody)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer utils.Close(resp.Body)
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	return resp.StatusCode == http.StatusOK
}

// analyzeResponse is the backend's wire shape for a classification answer.
type analyzeResponse struct {
	Disease       string   `json:"disease"`
	Confidence    *float64 `json:"confidence"`
	DetailedClass string   `json:"detailed_class"`
	Error         string   `json:"error"`
}

// Classify sends one bounded classification request and parses the answer.
// On any failure it returns a *FailureError carrying the kind; it is the
// orchestrator's job to turn that into a synthetic result.
func (c *Client) Classify(ctx context.Context, image []byte) (domain.ClassificationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.analyzeTimeout)
	defer cancel()

	body, contentType, err := encodeImageForm(image)
	if err != nil {
		return domain.ClassificationResult{}, &FailureError{Kind: FailureUnreachable, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, body)
	if err != nil {
		return domain.ClassificationResult{}, &FailureError{Kind: FailureUnreachable, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ClassificationResult{}, &FailureError{Kind: FailureUnreachable, Err: err}
	}
	defer utils.Close(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.ClassificationResult{}, &FailureError{Kind: FailureUnreachable, Err: err}
	}

	return decodeAnalyzeResponse(resp.StatusCode, raw)
}

// decodeAnalyzeResponse classifies the service's answer. Non-200 statuses,
// explicit error bodies and unparseable bodies all fold into failures; only
// a 200 with a usable disease slug and an in-range confidence is a real
// result.
func decodeAnalyzeResponse(status int, raw []byte) (domain.ClassificationResult, error) {
	var parsed analyzeResponse
	parseErr := json.Unmarshal(raw, &parsed)

	if status != http.StatusOK {
		err := fmt.Errorf("service returned status %d", status)
		if parseErr == nil && parsed.Error != "" {
			err = fmt.Errorf("service returned status %d: %s", status, parsed.Error)
		}
		return domain.ClassificationResult{}, &FailureError{Kind: FailureServiceError, Err: err}
	}

	if parseErr != nil {
		return domain.ClassificationResult{}, &FailureError{
			Kind: FailureMalformedResponse,
			Err:  fmt.Errorf("failed to parse response body: %w", parseErr),
		}
	}
	if parsed.Error != "" {
		return domain.ClassificationResult{}, &FailureError{
			Kind: FailureServiceError,
			Err:  fmt.Errorf("service reported error: %s", parsed.Error),
		}
	}
	if parsed.Disease == "" {
		return domain.ClassificationResult{}, &FailureError{
			Kind: FailureMalformedResponse,
			Err:  fmt.Errorf("response body is missing the disease field"),
		}
	}
	if parsed.Confidence == nil || *parsed.Confidence < 0 || *parsed.Confidence > 1 {
		return domain.ClassificationResult{}, &FailureError{
			Kind: FailureMalformedResponse,
			Err:  fmt.Errorf("response confidence is missing or out of range"),
		}
	}

	return domain.ClassificationResult{
		DiseaseID:     domain.DiseaseID(parsed.Disease),
		Confidence:    *parsed.Confidence,
		DetailedClass: parsed.DetailedClass,
		Synthetic:     false,
	}, nil
}

// encodeImageForm wraps the image payload in a multipart form under the
// field name the backend expects.
func encodeImageForm(image []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(imageField, "leaf.jpg")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("failed to write image payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
