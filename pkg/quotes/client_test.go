package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRandomFetchesQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/random" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[{"q":"Breathe.","a":"Anonymous"}]`))
	}))
	defer srv.Close()

	q := NewClient(srv.URL).Random(context.Background())
	if q.Text != "Breathe." || q.Author != "Anonymous" {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestRandomFallsBackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	q := NewClient(srv.URL).Random(context.Background())
	if q.Text == "" {
		t.Fatal("fallback quote must be non-empty")
	}
	found := false
	for _, fq := range fallbackQuotes {
		if fq == q {
			found = true
		}
	}
	if !found {
		t.Fatalf("quote %+v not from fallback list", q)
	}
}

func TestRandomFallsBackOnEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	q := NewClient(srv.URL).Random(context.Background())
	if q.Text == "" {
		t.Fatal("fallback quote must be non-empty")
	}
}
