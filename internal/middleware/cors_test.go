package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jaekwang-park/todo-backend/internal/middleware"
)

func TestCORS_Preflight(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		headers     string
		wantHeaders string
	}{
		{"get with content type", http.MethodGet, "Content-Type", "content-type"},
		{"patch", http.MethodPatch, "", ""},
		{"delete with request id", http.MethodDelete, "X-Request-ID", "x-request-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodOptions, "/todos/hello", nil)
			req.Header.Set("Origin", "www.somethingelse.com")
			req.Header.Set("Access-Control-Request-Method", tt.method)
			if tt.headers != "" {
				req.Header.Set("Access-Control-Request-Headers", tt.headers)
			}
			w := httptest.NewRecorder()

			middleware.CORS(inner).ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}
			if called {
				t.Error("preflight should not reach the next handler")
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
			}
			if got := w.Header().Get("Access-Control-Allow-Methods"); got != tt.method {
				t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, tt.method)
			}
			if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.EqualFold(got, tt.wantHeaders) {
				t.Errorf("Access-Control-Allow-Headers = %q, want %q", got, tt.wantHeaders)
			}
			if got := w.Header().Get("Access-Control-Max-Age"); got != "1800" {
				t.Errorf("Access-Control-Max-Age = %q, want 1800", got)
			}
		})
	}
}

func TestCORS_PlainOptionsReachesHandler(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/todos/1", nil)
	w := httptest.NewRecorder()

	middleware.CORS(inner).ServeHTTP(w, req)

	if !called {
		t.Error("expected OPTIONS without a requested method to reach the handler")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("expected inner status 204, got %d", w.Code)
	}
}

func TestCORS_SimpleRequest(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Origin", "www.somethingelse.com")
	w := httptest.NewRecorder()

	middleware.CORS(inner).ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("expected inner status 418, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.EqualFold(got, middleware.RequestIDHeader) {
		t.Errorf("Access-Control-Expose-Headers = %q, want %s", got, middleware.RequestIDHeader)
	}
}
