package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/ping", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"size": len(body), "principal": c.GetString(PrincipalKey)})
	})
	return router
}

func perform(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	router := newTestRouter(CORS())

	t.Run("wildcard without origin", func(t *testing.T) {
		w := perform(router, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin, got %q", got)
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("echoes origin with credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://workshop.example.com")
		w := perform(router, req)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://workshop.example.com" {
			t.Errorf("Expected echoed origin, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Expected credentials allowed, got %q", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://workshop.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type,x-api-key")
		w := perform(router, req)
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Headers"); got != "content-type,x-api-key" {
			t.Errorf("Expected requested headers to be allowed, got %q", got)
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST") {
			t.Errorf("Expected POST in allowed methods, got %q", w.Header().Get("Access-Control-Allow-Methods"))
		}
	})
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(RequestID())

	w := perform(router, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("Expected generated UUID request ID, got %q", w.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = perform(router, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected propagated request ID, got %q", got)
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	router := newTestRouter(RequestID(), StructuredLogger(logger))
	req := httptest.NewRequest(http.MethodGet, "/ping?verbose=1", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	perform(router, req)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON log line, got %q", buf.String())
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("Expected request_id req-1, got %v", entry["request_id"])
	}
	if entry["path"] != "/ping" || entry["query"] != "verbose=1" {
		t.Errorf("Unexpected path/query fields: %v %v", entry["path"], entry["query"])
	}
	if entry["status_code"] != float64(http.StatusOK) {
		t.Errorf("Expected status_code 200, got %v", entry["status_code"])
	}
	if entry["msg"] != "Request completed" {
		t.Errorf("Expected info message, got %v", entry["msg"])
	}
}

func TestSecurityHeaders(t *testing.T) {
	w := perform(newTestRouter(SecurityHeaders()), httptest.NewRequest(http.MethodGet, "/ping", nil))
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("Expected nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("Expected DENY, got %q", got)
	}
}

func TestRequestSizeLimit(t *testing.T) {
	router := newTestRouter(RequestSizeLimit(8))

	w := perform(router, httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for small body, got %d", w.Code)
	}

	w = perform(router, httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader("this body is too large")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for declared large body, got %d", w.Code)
	}

	// Unknown length is caught while reading
	req := httptest.NewRequest(http.MethodPost, "/ping", io.NopCloser(strings.NewReader("this body is too large")))
	req.ContentLength = -1
	w = perform(router, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for streamed large body, got %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	router := newTestRouter(RateLimiter(0.001, 2))

	for i := 0; i < 2; i++ {
		if w := perform(router, httptest.NewRequest(http.MethodGet, "/ping", nil)); w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i, w.Code)
		}
	}

	w := perform(router, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != "Rate limit exceeded" {
		t.Errorf("Unexpected error title %q", resp.Error)
	}
}

func TestErrorHandler(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.GET("/public", func(c *gin.Context) {
		_ = c.Error(errors.New("bad input")).SetType(gin.ErrorTypePublic)
	})
	router.GET("/private", func(c *gin.Context) {
		_ = c.Error(errors.New("database exploded"))
	})
	router.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"status": "short and stout"})
		_ = c.Error(errors.New("logged only"))
	})

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/public", http.StatusBadRequest, "bad input"},
		{"/private", http.StatusInternalServerError, "An internal error occurred"},
		{"/written", http.StatusTeapot, "short and stout"},
	}

	for _, tt := range tests {
		w := perform(router, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != tt.wantStatus {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.wantStatus, w.Code)
		}
		if !strings.Contains(w.Body.String(), tt.wantBody) {
			t.Errorf("%s: expected body to contain %q, got %s", tt.path, tt.wantBody, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "database exploded") {
			t.Errorf("%s: internal error leaked: %s", tt.path, w.Body.String())
		}
	}
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := perform(router, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
}

func TestGuard(t *testing.T) {
	authService := NewAuthService(config.AuthConfig{
		APIKey:    "workshop-key",
		JWTSecret: "workshop-secret",
		JWTIssuer: "cdk-workshop",
	})
	router := newTestRouter(Guard(authService))

	validToken, err := authService.GenerateToken("attendee-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	expiredToken, err := authService.GenerateToken("attendee-42", -time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	otherIssuer, err := NewAuthService(config.AuthConfig{JWTSecret: "workshop-secret", JWTIssuer: "someone-else"}).
		GenerateToken("attendee-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	wrongSecret, err := NewAuthService(config.AuthConfig{JWTSecret: "other-secret", JWTIssuer: "cdk-workshop"}).
		GenerateToken("attendee-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name          string
		headers       map[string]string
		wantStatus    int
		wantPrincipal string
	}{
		{name: "no credentials", wantStatus: http.StatusUnauthorized},
		{name: "valid api key", headers: map[string]string{APIKeyHeader: "workshop-key"}, wantStatus: http.StatusOK, wantPrincipal: "api-key"},
		{name: "wrong api key", headers: map[string]string{APIKeyHeader: "nope"}, wantStatus: http.StatusUnauthorized},
		{name: "valid bearer", headers: map[string]string{"Authorization": "Bearer " + validToken}, wantStatus: http.StatusOK, wantPrincipal: "attendee-42"},
		{name: "lowercase scheme", headers: map[string]string{"Authorization": "bearer " + validToken}, wantStatus: http.StatusOK, wantPrincipal: "attendee-42"},
		{name: "expired bearer", headers: map[string]string{"Authorization": "Bearer " + expiredToken}, wantStatus: http.StatusUnauthorized},
		{name: "wrong issuer", headers: map[string]string{"Authorization": "Bearer " + otherIssuer}, wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", headers: map[string]string{"Authorization": "Bearer " + wrongSecret}, wantStatus: http.StatusUnauthorized},
		{name: "malformed header", headers: map[string]string{"Authorization": validToken}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader("{}"))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := perform(router, req)
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body["principal"] != tt.wantPrincipal {
				t.Errorf("Expected principal %q, got %v", tt.wantPrincipal, body["principal"])
			}
		})
	}
}

func TestAuthServiceWithoutSecret(t *testing.T) {
	authService := NewAuthService(config.AuthConfig{APIKey: "k"})
	if _, err := authService.GenerateToken("x", time.Minute); err == nil {
		t.Error("Expected error generating token without a secret")
	}
	if _, err := authService.Authenticate("", "Bearer abc"); err == nil {
		t.Error("Expected bearer tokens to be rejected without a secret")
	}
	if _, err := authService.Authenticate("", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Expected ErrMissingCredentials, got %v", err)
	}
}
