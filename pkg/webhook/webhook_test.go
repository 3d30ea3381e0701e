package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sender := NewSender(srv.URL)
	if err := sender.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}
	if len(got) != 1 || got["content"] != "hello" {
		t.Errorf("body = %v, want exactly {content: hello}", got)
	}
}

func TestSend_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := NewSender(srv.URL)
	if err := sender.Send(context.Background(), "hello"); err == nil {
		t.Fatal("Send() should fail on a 502 response")
	}
}

func TestSend_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	sender := NewSender(srv.URL)
	if err := sender.Send(context.Background(), "hello"); err == nil {
		t.Fatal("Send() should fail when the endpoint is unreachable")
	}
}
