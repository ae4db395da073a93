package resolver

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"astrolabe/internal/cache"
	"astrolabe/internal/models"
	"astrolabe/internal/repository"
	"astrolabe/internal/sanitize"
	"astrolabe/internal/zodiac"
)

const (
	HemisphereNorthern = "Northern"
	HemisphereSouthern = "Southern"
)

// Options tune one resolution. The zero value is the common case: anchors
// derived from the current instant, cache enabled, strict cusp matching.
type Options struct {
	// Date is an explicit YYYY-MM-DD override; when set it is the sole
	// anchor tried.
	Date string
	// Permissive allows decomposing a cusp label into its component signs
	// when no cusp-specific row exists.
	Permissive bool
	// DisableCache bypasses the cache for both reads and writes.
	DisableCache bool
	// UserID scopes cache entries; empty means anonymous.
	UserID string
	// Location is the user's resolved time zone; nil falls back to the
	// resolver default, then UTC.
	Location *time.Location
}

// Resolver finds the best daily content row for a sign label and hemisphere,
// trying cache before store and a fixed sequence of date anchors. A failed
// store lookup for one anchor is logged and treated as that anchor having no
// rows; exhausting all anchors is a normal not-found outcome, not an error.
type Resolver struct {
	Repo   repository.ContentRepository
	Cache  cache.Store
	Filter *sanitize.Filter
	Logger *zap.Logger

	// DefaultLocation is used when Options.Location is nil. DeviceLocation
	// is the process-local zone; it exists as a field so tests can pin it.
	DefaultLocation *time.Location
	DeviceLocation  *time.Location

	CacheTTL     time.Duration
	CacheEnabled bool

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Resolve returns the matching row and true, or nil and false when no anchor
// yields a match. The returned row is always sanitized.
func (r *Resolver) Resolve(ctx context.Context, signLabel, hemisphere string, opts Options) (*models.DailyContent, bool, error) {
	if r == nil || r.Repo == nil {
		return nil, false, nil
	}

	hemisphere = NormalizeHemisphere(hemisphere)
	candidates := zodiac.Candidates(signLabel, opts.Permissive)
	if len(candidates) == 0 {
		return nil, false, nil
	}
	anchors := r.anchors(opts)

	if row, ok := r.lookupCache(ctx, anchors, candidates, hemisphere, opts); ok {
		return row, true, nil
	}
	return r.lookupStore(ctx, anchors, candidates, hemisphere, opts)
}

func (r *Resolver) anchors(opts Options) []string {
	if day, ok := parseDayOverride(opts.Date); ok {
		return []string{day}
	}
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	userLoc := opts.Location
	if userLoc == nil {
		userLoc = r.DefaultLocation
	}
	deviceLoc := r.DeviceLocation
	return anchorDays(now, userLoc, deviceLoc)
}

// lookupCache walks anchor-outer/candidate-inner. Hits are re-sanitized
// before returning: the marker denylist can change after a row was cached,
// and cached copies must not re-surface dropped content.
func (r *Resolver) lookupCache(ctx context.Context, anchors, candidates []string, hemisphere string, opts Options) (*models.DailyContent, bool) {
	if !r.cacheActive(opts) {
		return nil, false
	}
	for _, anchor := range anchors {
		for _, candidate := range candidates {
			key := cache.DailyContentKey(opts.UserID, candidate, hemisphere, anchor)
			raw, found, err := r.Cache.Get(ctx, key)
			if err != nil {
				// Cache is advisory; a broken read is a miss.
				continue
			}
			if !found {
				continue
			}
			var row models.DailyContent
			if err := json.Unmarshal(raw, &row); err != nil {
				continue
			}
			r.sanitizeRow(&row)
			return &row, true
		}
	}
	return nil, false
}

// lookupStore tries anchors in order, fetching all rows for the anchor's
// (date, hemisphere) in one query and matching sign candidates locally. Once
// an anchor returns any rows at all, later anchors are never consulted even
// if no candidate matches those rows; only an anchor with zero rows moves
// the search forward.
func (r *Resolver) lookupStore(ctx context.Context, anchors, candidates []string, hemisphere string, opts Options) (*models.DailyContent, bool, error) {
	for _, anchor := range anchors {
		rows, err := r.Repo.ListDailyContentsByDate(ctx, anchor, hemisphere)
		if err != nil {
			if r.Logger != nil {
				r.Logger.Warn("daily content lookup failed",
					zap.String("date", anchor),
					zap.String("hemisphere", hemisphere),
					zap.Error(err),
				)
			}
			continue
		}
		if len(rows) == 0 {
			continue
		}
		for _, candidate := range candidates {
			for i := range rows {
				if !zodiac.Matches(candidate, rows[i].Sign) {
					continue
				}
				row := rows[i]
				r.sanitizeRow(&row)
				r.storeCache(ctx, candidate, hemisphere, anchor, &row, opts)
				return &row, true, nil
			}
		}
		// Anchor had rows but none matched; stop instead of trying later
		// anchors.
		return nil, false, nil
	}
	return nil, false, nil
}

func (r *Resolver) storeCache(ctx context.Context, candidate, hemisphere, anchor string, row *models.DailyContent, opts Options) {
	if !r.cacheActive(opts) {
		return
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return
	}
	key := cache.DailyContentKey(opts.UserID, candidate, hemisphere, anchor)
	if err := r.Cache.Set(ctx, key, raw, r.CacheTTL); err != nil && r.Logger != nil {
		r.Logger.Debug("daily content cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *Resolver) cacheActive(opts Options) bool {
	return r.CacheEnabled && !opts.DisableCache && r.Cache != nil
}

func (r *Resolver) sanitizeRow(row *models.DailyContent) {
	if r.Filter == nil {
		return
	}
	row.DailyText = r.Filter.Text(row.DailyText)
	row.AffirmationText = r.Filter.Text(row.AffirmationText)
	row.DeeperInsightText = r.Filter.Text(row.DeeperInsightText)
}

// NormalizeHemisphere accepts any casing and defaults to Northern, matching
// how profiles without a stored hemisphere behave.
func NormalizeHemisphere(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "southern", "south", "s":
		return HemisphereSouthern
	default:
		return HemisphereNorthern
	}
}
