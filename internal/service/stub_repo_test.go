package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"astrolabe/internal/models"
	"astrolabe/internal/repository"
)

type stubRepo struct {
	contents []models.DailyContent
	states   map[string]*models.ContentSyncState
	apod     map[string]*models.ApodEntry

	failUpsert bool
	apodStores int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		states: map[string]*models.ContentSyncState{},
		apod:   map[string]*models.ApodEntry{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (s *stubRepo) UpsertDailyContentsTx(ctx context.Context, tx *gorm.DB, items []models.DailyContent) error {
	if s.failUpsert {
		return fmt.Errorf("upsert failed")
	}
	s.contents = append(s.contents, items...)
	return nil
}

func (s *stubRepo) ListDailyContentsByDate(ctx context.Context, date, hemisphere string) ([]models.DailyContent, error) {
	var out []models.DailyContent
	for _, row := range s.contents {
		if row.Date == date && row.Hemisphere == hemisphere {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubRepo) ListDailyContents(ctx context.Context, params repository.ListDailyContentsParams) ([]models.DailyContent, error) {
	return s.contents, nil
}

func (s *stubRepo) CountDailyContents(ctx context.Context, params repository.ListDailyContentsParams) (int64, error) {
	return int64(len(s.contents)), nil
}

func (s *stubRepo) GetSyncState(ctx context.Context, scope string) (*models.ContentSyncState, error) {
	return s.states[scope], nil
}

func (s *stubRepo) SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.ContentSyncState) error {
	s.states[state.Scope] = state
	return nil
}

func (s *stubRepo) ListSyncStates(ctx context.Context) ([]models.ContentSyncState, error) {
	var out []models.ContentSyncState
	for _, state := range s.states {
		out = append(out, *state)
	}
	return out, nil
}

func (s *stubRepo) UpsertApodEntry(ctx context.Context, item *models.ApodEntry) error {
	s.apodStores++
	copied := *item
	s.apod[item.Date] = &copied
	return nil
}

func (s *stubRepo) GetApodEntryByDate(ctx context.Context, date string) (*models.ApodEntry, error) {
	return s.apod[date], nil
}
