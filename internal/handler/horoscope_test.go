package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"astrolabe/internal/models"
	"astrolabe/internal/repository"
	"astrolabe/internal/resolver"
)

type stubContentRepo struct {
	rows []models.DailyContent
}

func (s *stubContentRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (s *stubContentRepo) UpsertDailyContentsTx(ctx context.Context, tx *gorm.DB, items []models.DailyContent) error {
	s.rows = append(s.rows, items...)
	return nil
}

func (s *stubContentRepo) ListDailyContentsByDate(ctx context.Context, date, hemisphere string) ([]models.DailyContent, error) {
	var out []models.DailyContent
	for _, row := range s.rows {
		if row.Date == date && row.Hemisphere == hemisphere {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubContentRepo) ListDailyContents(ctx context.Context, params repository.ListDailyContentsParams) ([]models.DailyContent, error) {
	return s.rows, nil
}

func (s *stubContentRepo) CountDailyContents(ctx context.Context, params repository.ListDailyContentsParams) (int64, error) {
	return int64(len(s.rows)), nil
}

func (s *stubContentRepo) GetSyncState(ctx context.Context, scope string) (*models.ContentSyncState, error) {
	return nil, nil
}

func (s *stubContentRepo) SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.ContentSyncState) error {
	return nil
}

func (s *stubContentRepo) ListSyncStates(ctx context.Context) ([]models.ContentSyncState, error) {
	return nil, nil
}

func (s *stubContentRepo) UpsertApodEntry(ctx context.Context, item *models.ApodEntry) error {
	return nil
}

func (s *stubContentRepo) GetApodEntryByDate(ctx context.Context, date string) (*models.ApodEntry, error) {
	return nil, nil
}

func newHoroscopeRouter(repo repository.ContentRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := &HoroscopeHandler{Resolver: &resolver.Resolver{
		Repo: repo,
		Now:  func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
	}}
	h.Register(router)
	return router
}

func TestGetDailyFound(t *testing.T) {
	repo := &stubContentRepo{rows: []models.DailyContent{
		{Sign: "Aries", Hemisphere: "Northern", Date: "2026-08-30", DailyText: "steady progress"},
	}}
	router := newHoroscopeRouter(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/horoscope/daily?sign=aries", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Code int                 `json:"code"`
		Data models.DailyContent `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != 0 || resp.Data.DailyText != "steady progress" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestGetDailyNotFound(t *testing.T) {
	router := newHoroscopeRouter(&stubContentRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/horoscope/daily?sign=leo", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetDailyRequiresSign(t *testing.T) {
	router := newHoroscopeRouter(&stubContentRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/horoscope/daily", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetDailyRejectsBadTimezone(t *testing.T) {
	router := newHoroscopeRouter(&stubContentRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/horoscope/daily?sign=aries&tz=Not/AZone", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
