package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchExport_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q", got)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	body, err := c.FetchExport(context.Background())
	if err != nil {
		t.Fatalf("FetchExport: %v", err)
	}
	if string(body) != "[]" {
		t.Errorf("body = %q, want %q", body, "[]")
	}
}

func TestFetchExport_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"forbidden", http.StatusForbidden},
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, 0)
			if _, err := c.FetchExport(context.Background()); err == nil {
				t.Fatalf("status %d: want error, got nil", tc.status)
			}
		})
	}
}
