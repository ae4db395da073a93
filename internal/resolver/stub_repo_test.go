package resolver

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"astrolabe/internal/models"
	"astrolabe/internal/repository"
)

// stubRepo is a test-only in-memory ContentRepository. Rows are keyed by
// "date|hemisphere"; listing records every queried key and can inject one
// failing date.
type stubRepo struct {
	rows     map[string][]models.DailyContent
	failDate string
	queried  []string
}

func newStubRepo() *stubRepo {
	return &stubRepo{rows: map[string][]models.DailyContent{}}
}

func (s *stubRepo) add(row models.DailyContent) {
	key := row.Date + "|" + row.Hemisphere
	s.rows[key] = append(s.rows[key], row)
}

func (s *stubRepo) ListDailyContentsByDate(ctx context.Context, date string, hemisphere string) ([]models.DailyContent, error) {
	s.queried = append(s.queried, date)
	if s.failDate != "" && date == s.failDate {
		return nil, errors.New("store unavailable")
	}
	return s.rows[date+"|"+hemisphere], nil
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }
func (s *stubRepo) UpsertDailyContentsTx(ctx context.Context, tx *gorm.DB, items []models.DailyContent) error {
	return nil
}
func (s *stubRepo) ListDailyContents(ctx context.Context, params repository.ListDailyContentsParams) ([]models.DailyContent, error) {
	return nil, nil
}
func (s *stubRepo) CountDailyContents(ctx context.Context, params repository.ListDailyContentsParams) (int64, error) {
	return 0, nil
}
func (s *stubRepo) GetSyncState(ctx context.Context, scope string) (*models.ContentSyncState, error) {
	return nil, nil
}
func (s *stubRepo) SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.ContentSyncState) error {
	return nil
}
func (s *stubRepo) ListSyncStates(ctx context.Context) ([]models.ContentSyncState, error) {
	return nil, nil
}
func (s *stubRepo) UpsertApodEntry(ctx context.Context, item *models.ApodEntry) error { return nil }
func (s *stubRepo) GetApodEntryByDate(ctx context.Context, date string) (*models.ApodEntry, error) {
	return nil, nil
}
