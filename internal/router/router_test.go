package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSetupRouterServesPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(Options{SessionSecret: "test-secret"})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestCORSHonoursAllowedOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(Options{AllowedOrigins: []string{"*.example.com", "localhost:*"}})

	tests := []struct {
		origin  string
		allowed bool
	}{
		{origin: "https://blog.example.com", allowed: true},
		{origin: "http://localhost:5173", allowed: true},
		{origin: "https://evil.test", allowed: false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", tt.origin)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		got := rr.Header().Get("Access-Control-Allow-Origin") == tt.origin
		if got != tt.allowed {
			t.Fatalf("origin %s: expected allowed=%v, got status %d header %q", tt.origin, tt.allowed, rr.Code, rr.Header().Get("Access-Control-Allow-Origin"))
		}
	}
}

func TestCORSDefaultsToSameOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(Options{})

	tests := []struct {
		name   string
		origin string
		status int
	}{
		{name: "no origin", origin: "", status: http.StatusOK},
		{name: "same origin", origin: "http://example.com", status: http.StatusOK},
		{name: "cross origin", origin: "https://evil.test", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rr.Code)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
				t.Fatalf("expected no Access-Control-Allow-Origin header, got %q", got)
			}
		})
	}
}

func TestMatchOriginPattern(t *testing.T) {
	tests := []struct {
		pattern string
		host    string
		want    bool
	}{
		{pattern: "example.com", host: "example.com", want: true},
		{pattern: "*.example.com", host: "a.example.com", want: true},
		{pattern: "*.example.com", host: "example.org", want: false},
		{pattern: "localhost:*", host: "localhost:8080", want: true},
		{pattern: "localhost:*", host: "otherhost:8080", want: false},
	}

	for _, tt := range tests {
		if got := matchOriginPattern(tt.pattern, tt.host); got != tt.want {
			t.Fatalf("matchOriginPattern(%q, %q) = %v, want %v", tt.pattern, tt.host, got, tt.want)
		}
	}
}

func TestExtractOriginHost(t *testing.T) {
	if got := extractOriginHost("https://example.com:8443"); got != "example.com:8443" {
		t.Fatalf("unexpected host %q", got)
	}
	if got := extractOriginHost("not a url"); got != "not a url" {
		t.Fatalf("expected fallback to raw origin, got %q", got)
	}
}
