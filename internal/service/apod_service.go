package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"astrolabe/internal/client/apod"
	"astrolabe/internal/events"
	"astrolabe/internal/models"
	"astrolabe/internal/repository"
)

// ApodService serves the astronomy picture of the day from the local store,
// fetching from the upstream API only on a miss. A stored entry never
// expires; the picture for a given date does not change.
type ApodService struct {
	Repo   repository.ContentRepository
	Client *apod.Client
	Bus    *events.Bus
	Logger *zap.Logger

	Now func() time.Time
}

func (s *ApodService) Enabled() bool {
	return s != nil && s.Client.Enabled()
}

// Get returns the picture for one date (YYYY-MM-DD); empty means today UTC.
func (s *ApodService) Get(ctx context.Context, date string) (*models.ApodEntry, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("apod disabled: no api key configured")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	entry, err := s.Repo.GetApodEntryByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry, nil
	}
	return s.Refresh(ctx, date)
}

// Refresh fetches from upstream and stores the result regardless of what is
// already cached.
func (s *ApodService) Refresh(ctx context.Context, date string) (*models.ApodEntry, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("apod disabled: no api key configured")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	pic, err := s.Client.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	entry := &models.ApodEntry{
		Date:        pic.Date,
		Title:       pic.Title,
		Explanation: pic.Explanation,
		MediaType:   pic.MediaType,
		URL:         pic.URL,
		FetchedAt:   s.now(),
	}
	if entry.Date == "" {
		entry.Date = date
	}
	if pic.HDURL != "" {
		entry.HDURL = strPtr(pic.HDURL)
	}
	if pic.Copyright != "" {
		entry.Copyright = strPtr(pic.Copyright)
	}
	if err := s.Repo.UpsertApodEntry(ctx, entry); err != nil {
		// Serve the fetched picture even when the write fails.
		if s.Logger != nil {
			s.Logger.Warn("apod store failed", zap.String("date", entry.Date), zap.Error(err))
		}
		return entry, nil
	}
	if s.Bus != nil {
		s.Bus.Publish(events.Event{
			Type:    events.TypeApodRefreshed,
			Payload: map[string]any{"date": entry.Date},
		})
	}
	return entry, nil
}

func (s *ApodService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
