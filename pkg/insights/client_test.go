package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientResolvesEndpoint(t *testing.T) {
	cases := map[string]string{
		"http://localhost:8080":         "http://localhost:8080/insights",
		"http://localhost:8080/":        "http://localhost:8080/insights",
		"http://analysis/api/insights":  "http://analysis/api/insights",
		"http://analysis/api/insights/": "http://analysis/api/insights",
	}
	for in, want := range cases {
		if got := NewClient(in, nil).Endpoint(); got != want {
			t.Fatalf("NewClient(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestAskSendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/insights" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if payload["query"] != "show delayed flights" {
			t.Errorf("unexpected query %q", payload["query"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer_fetched":"3 flights delayed"}`))
	}))
	defer srv.Close()

	answer, err := NewClient(srv.URL, srv.Client()).Ask(context.Background(), "show delayed flights")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if answer.Text() != "3 flights delayed" {
		t.Fatalf("unexpected answer %q", answer.Text())
	}
}

func TestAskNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"answer_fetched":"ignored"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).Ask(context.Background(), "q")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestAskInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).Ask(context.Background(), "q")
	if err == nil || errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
