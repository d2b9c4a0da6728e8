package modules

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, db Pinger) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewDebugModule(nil, db).Register(r.Group("/api"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	return w
}

func TestHealth_NoDatabase(t *testing.T) {
	w := serveHealth(t, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("expected 200 ok, got %d %s", w.Code, w.Body.String())
	}
}

func TestHealth_DatabaseReachable(t *testing.T) {
	called := false
	w := serveHealth(t, pingFunc(func(ctx context.Context) error {
		called = true
		if _, ok := ctx.Deadline(); !ok {
			t.Error("ping should carry a deadline")
		}
		return nil
	}))
	if !called {
		t.Fatal("database was not pinged")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHealth_DatabaseUnreachable(t *testing.T) {
	w := serveHealth(t, pingFunc(func(context.Context) error { return errors.New("connection refused") }))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "unreachable") || strings.Contains(body, "refused") {
		t.Fatalf("unexpected body %s", body)
	}
}
