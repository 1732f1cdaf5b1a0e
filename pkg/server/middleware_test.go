package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware(t *testing.T) {
	s := New()
	valid := uuid.New().String()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"no header generates id", "", false},
		{"valid uuid is kept", valid, true},
		{"invalid id is replaced", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := s.requestIDMiddleware(func(_ http.ResponseWriter, r *http.Request) {
				seen = RequestID(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			w := httptest.NewRecorder()
			h(w, req)

			got := w.Header().Get(HeaderRequestID)
			if got != seen {
				t.Errorf("header %q does not match context %q", got, seen)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("expected uuid, got %q", got)
			}
			if tt.keep && got != tt.incoming {
				t.Errorf("expected %q to be kept, got %q", tt.incoming, got)
			}
			if !tt.keep && got == tt.incoming {
				t.Errorf("expected %q to be replaced", tt.incoming)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 2
	s := New(WithConfig(cfg))

	h := s.withMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var limited *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code == http.StatusTooManyRequests {
			limited = w
			break
		}
		if w.Header().Get("X-RateLimit-Limit") != "1" {
			t.Errorf("expected X-RateLimit-Limit 1, got %q", w.Header().Get("X-RateLimit-Limit"))
		}
	}

	if limited == nil {
		t.Fatal("expected a request to be rate limited")
	}
	if limited.Header().Get("Retry-After") != "1" {
		t.Errorf("expected Retry-After 1, got %q", limited.Header().Get("Retry-After"))
	}

	var resp ErrorResponse
	if err := json.Unmarshal(limited.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != string(ErrCodeRateLimitExceeded) {
		t.Errorf("expected code %s, got %s", ErrCodeRateLimitExceeded, resp.Code)
	}
	if !resp.Retryable {
		t.Error("expected rate limit error to be retryable")
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		value any
	}{
		{"string panic", "boom"},
		{"error panic", http.ErrAbortHandler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
				panic(tt.value)
			})

			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/", nil))

			if w.Code != http.StatusInternalServerError {
				t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Code != string(ErrCodeInternalError) {
				t.Errorf("expected code %s, got %s", ErrCodeInternalError, resp.Code)
			}
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := New()

	var seen string
	h := s.versionMiddleware(func(_ http.ResponseWriter, r *http.Request) {
		seen = APIVersion(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/vnd.futureguide.docs.v1+json")
	w := httptest.NewRecorder()
	h(w, req)

	if seen != "v1" {
		t.Errorf("expected v1 in context, got %q", seen)
	}
	if w.Header().Get(HeaderAPIVersion) != "v1" {
		t.Errorf("expected %s header v1, got %q", HeaderAPIVersion, w.Header().Get(HeaderAPIVersion))
	}
}

func TestLoggingMiddlewareKeepsStatus(t *testing.T) {
	s := New()

	h := s.loggingMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body ok, got %q", w.Body.String())
	}
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	if rw.Status() != http.StatusOK {
		t.Errorf("expected default status %d, got %d", http.StatusOK, rw.Status())
	}

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusBadRequest)

	if rw.Status() != http.StatusAccepted {
		t.Errorf("expected first status to win, got %d", rw.Status())
	}
	if rw.Unwrap() != rec {
		t.Error("expected Unwrap to return the recorder")
	}

	rw.Flush()
	if !rec.Flushed {
		t.Error("expected Flush to reach the recorder")
	}

	if _, _, err := rw.Hijack(); err == nil {
		t.Error("expected hijack error for recorder")
	}
}
