package gormrepository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"astrolabe/internal/models"
	"astrolabe/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) UpsertDailyContentsTx(ctx context.Context, tx *gorm.DB, items []models.DailyContent) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sign"}, {Name: "hemisphere"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"daily_text",
			"affirmation_text",
			"deeper_insight_text",
			"source_id",
			"external_updated_at",
			"last_seen_at",
			"raw_json",
		}),
	}), items, 200)
}

func (s *Store) ListDailyContentsByDate(ctx context.Context, date string, hemisphere string) ([]models.DailyContent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.DailyContent
	err := s.db.WithContext(ctx).
		Model(&models.DailyContent{}).
		Where("date = ?", strings.TrimSpace(date)).
		Where("hemisphere = ?", strings.TrimSpace(hemisphere)).
		Order("sign asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListDailyContents(ctx context.Context, params repository.ListDailyContentsParams) ([]models.DailyContent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyDailyContentFilters(s.db.WithContext(ctx).Model(&models.DailyContent{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "date")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.DailyContent
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountDailyContents(ctx context.Context, params repository.ListDailyContentsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := applyDailyContentFilters(s.db.WithContext(ctx).Model(&models.DailyContent{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyDailyContentFilters(query *gorm.DB, params repository.ListDailyContentsParams) *gorm.DB {
	if params.Date != nil && strings.TrimSpace(*params.Date) != "" {
		query = query.Where("date = ?", strings.TrimSpace(*params.Date))
	}
	if params.Hemisphere != nil && strings.TrimSpace(*params.Hemisphere) != "" {
		query = query.Where("hemisphere = ?", strings.TrimSpace(*params.Hemisphere))
	}
	if params.Sign != nil && strings.TrimSpace(*params.Sign) != "" {
		query = query.Where("sign = ?", strings.TrimSpace(*params.Sign))
	}
	return query
}

func (s *Store) GetSyncState(ctx context.Context, scope string) (*models.ContentSyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var state models.ContentSyncState
	err := s.db.WithContext(ctx).First(&state, "scope = ?", scope).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.ContentSyncState) error {
	if state == nil {
		return nil
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cursor",
			"last_success_at",
			"last_attempt_at",
			"last_error",
			"stats_json",
		}),
	}).Create(state).Error
}

func (s *Store) ListSyncStates(ctx context.Context) ([]models.ContentSyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var states []models.ContentSyncState
	if err := s.db.WithContext(ctx).Order("scope asc").Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (s *Store) UpsertApodEntry(ctx context.Context, item *models.ApodEntry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Date) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title",
			"explanation",
			"media_type",
			"url",
			"hdurl",
			"copyright",
			"fetched_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetApodEntryByDate(ctx context.Context, date string) (*models.ApodEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var entry models.ApodEntry
	err := s.db.WithContext(ctx).First(&entry, "date = ?", strings.TrimSpace(date)).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func createInBatches[T any](db *gorm.DB, items []T, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	return db.CreateInBatches(items, batchSize).Error
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
