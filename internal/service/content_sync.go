package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"astrolabe/internal/client/contentfeed"
	"astrolabe/internal/events"
	"astrolabe/internal/models"
	"astrolabe/internal/repository"
	"astrolabe/internal/resolver"
	"astrolabe/internal/sanitize"
)

// ContentSyncService pulls pre-generated daily rows from the upstream feed
// and upserts them into the local store. Rows are sanitized before storage
// so that cached and stored text agree.
type ContentSyncService struct {
	Store  repository.ContentRepository
	Feed   *contentfeed.Client
	Filter *sanitize.Filter
	Bus    *events.Bus
	Logger *zap.Logger

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

type SyncOptions struct {
	// Dates holds YYYY-MM-DD values to pull; empty means today plus
	// LookaheadDays.
	Dates         []string
	Hemispheres   []string
	LookaheadDays int
}

type SyncResult struct {
	Scopes   int  `json:"scopes"`
	Rows     int  `json:"rows"`
	Upserted int  `json:"upserted"`
	Skipped  int  `json:"skipped"`
	Errors   int  `json:"errors"`
	Done     bool `json:"done"`
}

func (s *ContentSyncService) Sync(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	if s.Feed == nil {
		return SyncResult{}, fmt.Errorf("content feed client is nil")
	}
	dates := s.normalizeDates(opts)
	hemispheres := normalizeHemispheres(opts.Hemispheres)

	result := SyncResult{}
	var firstErr error
	for _, hemisphere := range hemispheres {
		for _, date := range dates {
			scope := hemisphere + ":" + date
			upserted, skipped, err := s.syncScope(ctx, scope, date, hemisphere)
			result.Scopes++
			if err != nil {
				result.Errors++
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			result.Rows += upserted + skipped
			result.Upserted += upserted
			result.Skipped += skipped
		}
	}
	result.Done = result.Errors == 0
	if result.Upserted > 0 && s.Bus != nil {
		s.Bus.Publish(events.Event{
			Type: events.TypeContentSynced,
			Payload: map[string]any{
				"scopes":   result.Scopes,
				"upserted": result.Upserted,
			},
		})
	}
	return result, firstErr
}

func (s *ContentSyncService) syncScope(ctx context.Context, scope, date, hemisphere string) (upserted, skipped int, err error) {
	rows, err := s.Feed.ListDaily(ctx, date, hemisphere)
	if err != nil {
		s.writeSyncError(ctx, scope, err)
		return 0, 0, err
	}

	now := s.now()
	items := make([]models.DailyContent, 0, len(rows))
	for _, row := range rows {
		item, ok := s.mapRow(row, date, hemisphere, now)
		if !ok {
			skipped++
			continue
		}
		items = append(items, item)
	}

	err = s.Store.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Store.UpsertDailyContentsTx(ctx, tx, items); err != nil {
			return err
		}
		state := &models.ContentSyncState{
			Scope:         scope,
			LastAttemptAt: &now,
			LastSuccessAt: &now,
			LastError:     nil,
			StatsJSON:     statsJSON(map[string]int{"rows": len(rows), "upserted": len(items), "skipped": skipped}),
		}
		return s.Store.SaveSyncStateTx(ctx, tx, state)
	})
	if err != nil {
		s.writeSyncError(ctx, scope, err)
		return 0, 0, err
	}
	if s.Logger != nil {
		s.Logger.Info("content scope synced",
			zap.String("scope", scope),
			zap.Int("upserted", len(items)),
			zap.Int("skipped", skipped),
		)
	}
	return len(items), skipped, nil
}

// mapRow converts one feed row to a storable model. Rows missing any part
// of the (sign, hemisphere, date) identity or the daily text are skipped.
func (s *ContentSyncService) mapRow(row contentfeed.Row, date, hemisphere string, now time.Time) (models.DailyContent, bool) {
	sign := strings.TrimSpace(row.Sign)
	daily := s.filter().Text(row.DailyText)
	if sign == "" || strings.TrimSpace(daily) == "" {
		return models.DailyContent{}, false
	}
	rowDate := strings.TrimSpace(row.Date)
	if rowDate == "" {
		rowDate = date
	}
	rowHemisphere := resolver.NormalizeHemisphere(row.Hemisphere)
	if strings.TrimSpace(row.Hemisphere) == "" {
		rowHemisphere = hemisphere
	}
	item := models.DailyContent{
		Sign:              sign,
		Hemisphere:        rowHemisphere,
		Date:              rowDate,
		DailyText:         daily,
		AffirmationText:   s.filter().Text(row.AffirmationText),
		DeeperInsightText: s.filter().Text(row.DeeperInsightText),
		LastSeenAt:        now,
		RawJSON:           mustJSON(row),
	}
	if id := strings.TrimSpace(row.ID); id != "" {
		item.SourceID = &id
	}
	if row.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339, row.UpdatedAt); err == nil {
			t = t.UTC()
			item.ExternalUpdatedAt = &t
		}
	}
	return item, true
}

func (s *ContentSyncService) writeSyncError(ctx context.Context, scope string, err error) {
	if s.Logger != nil {
		s.Logger.Warn("content sync failed", zap.String("scope", scope), zap.Error(err))
	}
	now := s.now()
	_ = s.Store.InTx(ctx, func(tx *gorm.DB) error {
		state := &models.ContentSyncState{
			Scope:         scope,
			LastAttemptAt: &now,
			LastError:     strPtr(err.Error()),
		}
		return s.Store.SaveSyncStateTx(ctx, tx, state)
	})
}

func (s *ContentSyncService) normalizeDates(opts SyncOptions) []string {
	if len(opts.Dates) > 0 {
		return opts.Dates
	}
	days := opts.LookaheadDays
	if days < 0 {
		days = 0
	}
	now := s.now()
	dates := make([]string, 0, days+1)
	for i := 0; i <= days; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return dates
}

func (s *ContentSyncService) filter() *sanitize.Filter {
	if s.Filter != nil {
		return s.Filter
	}
	return sanitize.NewFilter(nil)
}

func (s *ContentSyncService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeHemispheres(raw []string) []string {
	if len(raw) == 0 {
		return []string{resolver.HemisphereNorthern, resolver.HemisphereSouthern}
	}
	out := make([]string, 0, len(raw))
	seen := map[string]bool{}
	for _, h := range raw {
		norm := resolver.NormalizeHemisphere(h)
		if !seen[norm] {
			seen[norm] = true
			out = append(out, norm)
		}
	}
	return out
}

func statsJSON(stats map[string]int) datatypes.JSON {
	if len(stats) == 0 {
		return datatypes.JSON([]byte("null"))
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(payload)
}

func mustJSON(v any) datatypes.JSON {
	payload, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(payload)
}

func strPtr(s string) *string {
	return &s
}
