package contentfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/daily" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2026-08-30" {
			t.Fatalf("date = %q", got)
		}
		if got := r.URL.Query().Get("hemisphere"); got != "Northern" {
			t.Fatalf("hemisphere = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Fatalf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"r1","sign":"Leo","hemisphere":"Northern","date":"2026-08-30","daily_text":"hello"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "key-1")
	rows, err := c.ListDaily(context.Background(), "2026-08-30", "Northern")
	if err != nil {
		t.Fatalf("ListDaily: %v", err)
	}
	if len(rows) != 1 || rows[0].Sign != "Leo" || rows[0].DailyText != "hello" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestListDailyAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "")
	_, err := c.ListDaily(context.Background(), "2026-08-30", "Northern")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("status = %d", apiErr.Status)
	}
}

func TestListDailyUnconfigured(t *testing.T) {
	c := NewClient(http.DefaultClient, "", "")
	if _, err := c.ListDaily(context.Background(), "2026-08-30", "Northern"); err == nil {
		t.Fatalf("expected error for unconfigured client")
	}
}
