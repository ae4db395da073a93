package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"astrolabe/internal/client/apod"
	"astrolabe/internal/models"
)

func newApodServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"date": "2026-08-30",
			"title": "Spiral Galaxy",
			"explanation": "A nearby spiral.",
			"media_type": "image",
			"url": "https://example.org/galaxy.jpg",
			"copyright": "J. Doe"
		}`))
	}))
}

func TestApodGetServesStoredEntry(t *testing.T) {
	hits := 0
	server := newApodServer(t, &hits)
	defer server.Close()

	repo := newStubRepo()
	repo.apod["2026-08-30"] = &models.ApodEntry{Date: "2026-08-30", Title: "cached"}

	svc := &ApodService{
		Repo:   repo,
		Client: apod.NewClient(server.Client(), server.URL, "key"),
		Now:    func() time.Time { return syncTestNow },
	}

	entry, err := svc.Get(context.Background(), "2026-08-30")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.Title != "cached" {
		t.Fatalf("got %q, want stored entry", entry.Title)
	}
	if hits != 0 {
		t.Fatalf("upstream hit %d times on stored entry", hits)
	}
}

func TestApodGetFetchesAndStoresOnMiss(t *testing.T) {
	hits := 0
	server := newApodServer(t, &hits)
	defer server.Close()

	repo := newStubRepo()
	svc := &ApodService{
		Repo:   repo,
		Client: apod.NewClient(server.Client(), server.URL, "key"),
		Now:    func() time.Time { return syncTestNow },
	}

	entry, err := svc.Get(context.Background(), "2026-08-30")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hits != 1 {
		t.Fatalf("upstream hit %d times, want 1", hits)
	}
	if entry.Title != "Spiral Galaxy" {
		t.Fatalf("unexpected title %q", entry.Title)
	}
	if entry.Copyright == nil || *entry.Copyright != "J. Doe" {
		t.Fatalf("copyright not mapped")
	}
	if repo.apodStores != 1 {
		t.Fatalf("entry not stored")
	}

	// Second call serves the store.
	if _, err := svc.Get(context.Background(), "2026-08-30"); err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if hits != 1 {
		t.Fatalf("second Get hit upstream")
	}
}

func TestApodDisabledWithoutKey(t *testing.T) {
	repo := newStubRepo()
	svc := &ApodService{
		Repo:   repo,
		Client: apod.NewClient(http.DefaultClient, "", ""),
	}
	if svc.Enabled() {
		t.Fatalf("service without key must be disabled")
	}
	if _, err := svc.Get(context.Background(), ""); err == nil {
		t.Fatalf("expected error from disabled service")
	}
}
