package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/registryops/eppproxy/internal/commands"
)

func TestDomainCheckDecodesEnvelopeAndPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/domains/check" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("registry"); got != "verisign" {
			t.Errorf("registry = %q", got)
		}

		var req commands.DomainCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(req.Domains) != 1 || req.Domains[0] != "example.com" {
			t.Errorf("domains = %v", req.Domains)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 1000, "message": "Command completed successfully",
			"cl_trid": "abc-1", "sv_trid": "SRV-1",
			"payload": {"Results": [{"Name": "example.com", "Available": true}]}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	payload, env, err := c.DomainCheck(Target{Registry: "verisign"},
		commands.DomainCheckRequest{Domains: []string{"example.com"}})
	if err != nil {
		t.Fatalf("DomainCheck: %v", err)
	}
	if env.Code != 1000 || env.SvTRID != "SRV-1" {
		t.Errorf("envelope = %+v", env)
	}
	if len(payload.Results) != 1 || !payload.Results[0].Available {
		t.Errorf("payload = %+v", payload)
	}
}

func TestProblemResponseBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"title": "Registry Not Ready", "status": 503, "detail": "session is reconnecting"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.PollRequest(Target{Registry: "nominet"})
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable || !apiErr.IsRegistryUnavailable() {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestBearerTokenIsSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("authorization = %q", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL).WithToken("tok-123")
	if _, err := c.Registries(); err != nil {
		t.Fatalf("Registries: %v", err)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"access_token": "tok", "token_type": "Bearer", "expires_in": 900}`))
	}))
	defer srv.Close()

	tok, err := New(srv.URL).Login("ops", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok.AccessToken != "tok" || tok.ExpiresInDuration().Seconds() != 900 {
		t.Errorf("token = %+v", tok)
	}
}
