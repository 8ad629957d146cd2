package vision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"pig-persona/internal/domain"
)

func testConfig(endpoint string) Config {
	return Config{
		Endpoint:     endpoint,
		Key:          "test-key",
		PollInterval: time.Millisecond,
		PollAttempts: 5,
	}
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c, err := NewClient(testConfig(endpoint), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientNotConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing endpoint", Config{Key: "k"}},
		{"missing key", Config{Endpoint: "http://local"}},
		{"blank values", Config{Endpoint: "  ", Key: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(tt.cfg, nil, nil); !errors.Is(err, ErrNotConfigured) {
				t.Fatalf("err = %v; want ErrNotConfigured", err)
			}
		})
	}
}

func TestAcquireDetectionSuccessAfterPolling(t *testing.T) {
	var statusCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Prediction-Key") != "test-key" {
			t.Errorf("missing prediction key header")
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/analyses":
			json.NewEncoder(w).Encode(map[string]any{"jobId": "job-1"})
		case r.Method == http.MethodGet && r.URL.Path == "/analyses/job-1":
			n := atomic.AddInt32(&statusCalls, 1)
			if n < 3 {
				json.NewEncoder(w).Encode(map[string]any{"status": "Running"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"status": "Succeeded",
				"result": map[string]any{
					"description": "a cartoon pig",
					"detailCount": 6,
					"canvas":      map[string]any{"width": 200, "height": 100},
					"regions": []map[string]any{
						{"category": "Pig Head", "confidence": 0.9, "boundingBox": map[string]any{"x": 10, "y": 10, "width": 30, "height": 30}},
						{"category": "body", "confidence": 0.8, "boundingBox": map[string]any{"x": 40, "y": 20, "width": 60, "height": 40}},
					},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	det, err := c.AcquireDetection(context.Background(), "https://example.com/pig.png")
	if err != nil {
		t.Fatalf("AcquireDetection: %v", err)
	}

	if got := atomic.LoadInt32(&statusCalls); got != 3 {
		t.Fatalf("status fetched %d times; want 3", got)
	}
	if det.Head == nil || det.Body == nil {
		t.Fatal("regions were not partitioned into head and body")
	}
	if det.Description != "a cartoon pig" {
		t.Fatalf("description = %q", det.Description)
	}
	if det.DetailCount != 6 {
		t.Fatalf("detailCount = %d; want 6", det.DetailCount)
	}
	if det.Overall.Canvas.Width != 200 || det.Overall.Canvas.Height != 100 {
		t.Fatalf("canvas = %+v", det.Overall.Canvas)
	}
}

func TestAcquireDetectionRemoteFailureStopsImmediately(t *testing.T) {
	var statusCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"id": "job-2"})
			return
		}
		atomic.AddInt32(&statusCalls, 1)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "failed",
			"error":  map[string]any{"message": "image unreadable"},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.AcquireDetection(context.Background(), "https://example.com/pig.png")
	if !errors.Is(err, ErrRemoteFailure) {
		t.Fatalf("err = %v; want ErrRemoteFailure", err)
	}
	if !strings.Contains(err.Error(), "image unreadable") {
		t.Fatalf("err = %v; must carry the remote message", err)
	}
	if got := atomic.LoadInt32(&statusCalls); got != 1 {
		t.Fatalf("status fetched %d times after failed; want 1", got)
	}
}

func TestAcquireDetectionTimeoutAfterBudget(t *testing.T) {
	var statusCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"jobId": "job-3"})
			return
		}
		atomic.AddInt32(&statusCalls, 1)
		json.NewEncoder(w).Encode(map[string]any{"status": "notStarted"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.AcquireDetection(context.Background(), "https://example.com/pig.png")
	if !errors.Is(err, ErrAcquisitionTimeout) {
		t.Fatalf("err = %v; want ErrAcquisitionTimeout", err)
	}
	if got := atomic.LoadInt32(&statusCalls); got != 5 {
		t.Fatalf("status fetched %d times; want the full budget of 5", got)
	}
}

func TestAcquireDetectionSubmissionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.AcquireDetection(context.Background(), "https://example.com/pig.png"); !errors.Is(err, ErrSubmissionRejected) {
		t.Fatalf("err = %v; want ErrSubmissionRejected", err)
	}
}

func TestAcquireDetectionNoJobID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"accepted": true})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.AcquireDetection(context.Background(), "https://example.com/pig.png"); !errors.Is(err, ErrSubmissionRejected) {
		t.Fatalf("err = %v; want ErrSubmissionRejected", err)
	}
}

func TestAcquireDetectionMalformedResult(t *testing.T) {
	tests := []struct {
		name   string
		status map[string]any
	}{
		{"succeeded without result", map[string]any{"status": "succeeded"}},
		{"result with nothing recognizable", map[string]any{
			"status": "succeeded",
			"result": map[string]any{"description": "a pig with no features"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPost {
					json.NewEncoder(w).Encode(map[string]any{"jobId": "job-4"})
					return
				}
				json.NewEncoder(w).Encode(tt.status)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			if _, err := c.AcquireDetection(context.Background(), "https://example.com/pig.png"); !errors.Is(err, ErrMalformedResult) {
				t.Fatalf("err = %v; want ErrMalformedResult", err)
			}
		})
	}
}

func TestAcquireDetectionDirectScalarPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"jobId": "job-5"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "succeeded",
			"result": map[string]any{
				"verticalPlacement": "Top",
				"orientation":       "Left",
				"legCount":          4,
				"earSize":           "Large",
				"tailLength":        0.7,
				"description":       "a cartoon pig",
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	det, err := c.AcquireDetection(context.Background(), "https://example.com/pig.png")
	if err != nil {
		t.Fatalf("AcquireDetection: %v", err)
	}

	if det.VerticalPlacement != domain.PlacementTop || det.Orientation != domain.OrientationLeft {
		t.Fatalf("direct enums not copied through: %+v", det)
	}
	if det.LegCount == nil || *det.LegCount != 4 {
		t.Fatalf("legCount = %v; want 4", det.LegCount)
	}
	if det.TailLength == nil || *det.TailLength != 0.7 {
		t.Fatalf("tailLength = %v; want 0.7", det.TailLength)
	}
	if det.EarSize != domain.EarSizeLarge {
		t.Fatalf("earSize = %q; want Large", det.EarSize)
	}
}
