package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Morteza-Sakiyan/ErrorHandler/pkg/config"
	"github.com/Morteza-Sakiyan/ErrorHandler/pkg/observability"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIKey = "test-key"
	cfg.Timeout = 2 * time.Second
	cfg.MaxRetries = 0
	cfg.CircuitBreakerEnabled = false
	cfg.EnableMetrics = false
	return cfg
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(testConfig(baseURL), WithLogger(observability.Nop()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestUsersGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users/u1" {
			t.Errorf("expected path /v1/users/u1, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected Bearer test-key auth header, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
		json.NewEncoder(w).Encode(User{ID: "u1", Email: "a@b.c", Name: "Ada"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	u, err := c.Users.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" || u.Name != "Ada" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestFailedCallDecodesRegisteredShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"User not found","userId":"404","timestamp":"123"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	c.RegisterErrorShape(JSONShape[userNotFoundShape]())
	c.RegisterErrorShape(JSONShape[serverErrorShape]())

	_, err := c.Users.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}

	out, ok := OutcomeOf(err)
	if !ok {
		t.Fatalf("expected *CallError, got %T", err)
	}
	if out.Status != StatusDataError {
		t.Fatalf("expected DATA_ERROR, got %s", out.Status)
	}
	if out.Code == nil || *out.Code != http.StatusNotFound {
		t.Fatalf("expected code 404, got %v", out.Code)
	}
	p, ok := out.Payload.(*userNotFoundShape)
	if !ok {
		t.Fatalf("expected *userNotFoundShape, got %T", out.Payload)
	}
	if p.UserID != "404" {
		t.Errorf("expected userId 404, got %s", p.UserID)
	}
}

func TestFailedCallFallsBackToGenericPayload(t *testing.T) {
	body := `{"trace":"0xdeadbeef"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(body))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	c.RegisterErrorShape(JSONShape[userNotFoundShape]())

	_, err := c.Reports.Get(context.Background(), "r1")
	out, ok := OutcomeOf(err)
	if !ok {
		t.Fatalf("expected *CallError, got %T", err)
	}
	if out.Status != StatusUnknown {
		t.Fatalf("expected UNKNOWN_ERROR, got %s", out.Status)
	}
	gp, ok := out.Payload.(*GenericPayload)
	if !ok {
		t.Fatalf("expected *GenericPayload, got %T", out.Payload)
	}
	if gp.RawJSON != body {
		t.Errorf("raw body not preserved: %q", gp.RawJSON)
	}
}

func TestTimeoutClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond
	c, err := NewClient(cfg, WithLogger(observability.Nop()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Users.List(context.Background())
	if !IsTimeout(err) {
		t.Fatalf("expected timeout classification, got %v", err)
	}
	out, _ := OutcomeOf(err)
	if out.Code != nil || out.Payload != nil {
		t.Error("timeout outcome must carry no code or payload")
	}
}

func TestNoConnectionClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := newTestClient(t, url)
	_, err := c.Users.List(context.Background())
	if !IsNoConnection(err) {
		t.Fatalf("expected no-connection classification, got %v", err)
	}
}

func TestCallErrorMessage(t *testing.T) {
	code := 404
	ce := &CallError{Outcome: Outcome{
		Status:  StatusDataError,
		Code:    &code,
		Payload: &userNotFoundShape{Message: "User not found"},
	}}
	want := "server error (404): User not found"
	if ce.Error() != want {
		t.Errorf("Error() = %q, want %q", ce.Error(), want)
	}
}
