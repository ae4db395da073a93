package repository

import (
	"context"

	"gorm.io/gorm"

	"astrolabe/internal/models"
)

type ListDailyContentsParams struct {
	Date       *string
	Hemisphere *string
	Sign       *string
	Limit      int
	Offset     int
	OrderBy    string
	Asc        *bool
}

// ContentRepository is the read/write surface over the daily content store.
type ContentRepository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpsertDailyContentsTx(ctx context.Context, tx *gorm.DB, items []models.DailyContent) error

	// ListDailyContentsByDate returns every row for one (date, hemisphere)
	// pair in a single query; the resolver matches sign candidates locally.
	ListDailyContentsByDate(ctx context.Context, date string, hemisphere string) ([]models.DailyContent, error)

	ListDailyContents(ctx context.Context, params ListDailyContentsParams) ([]models.DailyContent, error)
	CountDailyContents(ctx context.Context, params ListDailyContentsParams) (int64, error)

	GetSyncState(ctx context.Context, scope string) (*models.ContentSyncState, error)
	SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.ContentSyncState) error
	ListSyncStates(ctx context.Context) ([]models.ContentSyncState, error)

	UpsertApodEntry(ctx context.Context, item *models.ApodEntry) error
	GetApodEntryByDate(ctx context.Context, date string) (*models.ApodEntry, error)
}
