package mailapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_FetchMessages_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/messages/acct-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q, want 10", got)
		}
		if got := r.Header.Get("X-Session-Token"); got != "tok-123" {
			t.Errorf("session token = %q, want tok-123", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"type": "success",
			"data": [
				{"subject": "code is 482913", "createTime": 1700000000, "fromName": "Acme", "fromAddr": "no-reply@acme.test"},
				{"subject": "welcome", "createTime": "2023-11-14T22:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	msgs, err := c.FetchMessages(context.Background(), "tok-123", "acct-1", 10)
	if err != nil {
		t.Fatalf("FetchMessages() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Subject != "code is 482913" || msgs[0].FromAddr != "no-reply@acme.test" {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	// numeric and string timestamps both survive decoding untouched
	if _, ok := msgs[0].CreateTime.(float64); !ok {
		t.Errorf("numeric createTime decoded as %T", msgs[0].CreateTime)
	}
	if _, ok := msgs[1].CreateTime.(string); !ok {
		t.Errorf("string createTime decoded as %T", msgs[1].CreateTime)
	}
}

func TestClient_FetchMessages_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchMessages(context.Background(), "tok", "acct-1", 10)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v (%T), want *TransportError", err, err)
	}
	if te.Status != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", te.Status, http.StatusGatewayTimeout)
	}
}

func TestClient_FetchMessages_UnparsableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchMessages(context.Background(), "tok", "acct-1", 10)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v (%T), want *TransportError", err, err)
	}
}

func TestClient_FetchMessages_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "error", "msg": "session expired"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchMessages(context.Background(), "tok", "acct-1", 10)

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v (%T), want *ProviderError", err, err)
	}
	if pe.Message != "session expired" {
		t.Errorf("message = %q, want %q", pe.Message, "session expired")
	}
}

func TestClient_FetchMessages_ConnectionRefused(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := c.FetchMessages(context.Background(), "tok", "acct-1", 10)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v (%T), want *TransportError", err, err)
	}
	if te.Status != 0 {
		t.Errorf("status = %d, want 0 for a failed request", te.Status)
	}
}
