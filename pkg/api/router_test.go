package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/registryops/eppproxy/internal/proxy"
	"github.com/registryops/eppproxy/internal/router"
	"github.com/registryops/eppproxy/internal/session"
	"github.com/registryops/eppproxy/pkg/api/auth"
	"github.com/registryops/eppproxy/pkg/api/handlers"
)

// testProxy builds a proxy with one registered, never-connected session.
// Commands against it fail with not-ready, which is enough to exercise
// routing, decoding and error mapping.
func testProxy(t *testing.T) *proxy.Proxy {
	t.Helper()

	sess := session.New(session.Config{
		RegistryID: "verisign",
		Host:       "epp.example.net:700",
		Username:   "tag",
		Password:   "secret",
		Zones:      []string{"com", "net"},
	}, nil, nil)

	rt := router.New()
	if err := rt.Register(sess); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return proxy.New(rt, nil)
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(testProxy(t), nil, nil, auth.NewUserStore(nil), 10*time.Second)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthLiveness(t *testing.T) {
	rec := doRequest(t, testRouter(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp handlers.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
}

func TestReadinessWithoutSessions(t *testing.T) {
	rec := doRequest(t, testRouter(t), http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 while no session is ready", rec.Code)
	}
}

func TestRegistriesList(t *testing.T) {
	rec := doRequest(t, testRouter(t), http.MethodGet, "/api/v1/registries", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var statuses []proxy.RegistryStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &statuses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(statuses) != 1 || statuses[0].ID != "verisign" {
		t.Fatalf("statuses = %+v, want one entry for verisign", statuses)
	}
	if statuses[0].State != "disconnected" {
		t.Errorf("state = %q, want disconnected", statuses[0].State)
	}
}

func TestRegistriesGetUnknown(t *testing.T) {
	rec := doRequest(t, testRouter(t), http.MethodGet, "/api/v1/registries/nominet", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q, want application/problem+json", ct)
	}
}

func TestCommandRoutedByDomain(t *testing.T) {
	// example.com routes to the com zone; the session is disconnected so
	// the command maps to 503.
	rec := doRequest(t, testRouter(t), http.MethodPost,
		"/api/v1/domains/check", `{"Domains": ["example.com"]}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 not-ready, body %s", rec.Code, rec.Body.String())
	}
}

func TestCommandRegistryQueryParam(t *testing.T) {
	rec := doRequest(t, testRouter(t), http.MethodPost,
		"/api/v1/poll/request?registry=verisign", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 not-ready, body %s", rec.Code, rec.Body.String())
	}
}

func TestCommandAmbiguousTarget(t *testing.T) {
	rec := doRequest(t, testRouter(t), http.MethodPost, "/api/v1/poll/request", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a target-less poll", rec.Code)
	}
}

func TestCommandUnroutableDomain(t *testing.T) {
	rec := doRequest(t, testRouter(t), http.MethodPost,
		"/api/v1/domains/check", `{"Domains": ["example.co.uk"]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 for a domain no registry serves", rec.Code)
	}
}

func TestCommandBadBody(t *testing.T) {
	rec := doRequest(t, testRouter(t), http.MethodPost,
		"/api/v1/domains/check", `{"Domains": "not-an-array"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a malformed body", rec.Code)
	}
}

func TestAuthRequiredWhenUsersConfigured(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users := auth.NewUserStore(map[string]string{"ops": string(hash)})
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:              "test-secret-key-for-testing-only-32chars",
		AccessTokenDuration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	h := NewRouter(testProxy(t), nil, jwtService, users, 10*time.Second)

	// No token: rejected.
	rec := doRequest(t, h, http.MethodGet, "/api/v1/registries", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without a token", rec.Code)
	}

	// Health stays open.
	rec = doRequest(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}

	// Login, then retry with the bearer token.
	rec = doRequest(t, h, http.MethodPost, "/auth/login",
		`{"username": "ops", "password": "hunter2hunter2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var token auth.Token
	if err := json.Unmarshal(rec.Body.Bytes(), &token); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if token.AccessToken == "" || token.TokenType != "Bearer" {
		t.Fatalf("token = %+v", token)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/registries", nil)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	authed := httptest.NewRecorder()
	h.ServeHTTP(authed, req)
	if authed.Code != http.StatusOK {
		t.Fatalf("status = %d with token, body %s", authed.Code, authed.Body.String())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users := auth.NewUserStore(map[string]string{"ops": string(hash)})
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:              "test-secret-key-for-testing-only-32chars",
		AccessTokenDuration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	h := NewRouter(testProxy(t), nil, jwtService, users, 10*time.Second)

	rec := doRequest(t, h, http.MethodPost, "/auth/login",
		`{"username": "ops", "password": "wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
