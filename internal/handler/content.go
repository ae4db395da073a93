package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"astrolabe/internal/repository"
	"astrolabe/internal/resolver"
	"astrolabe/internal/service"
)

type ContentHandler struct {
	Sync   *service.ContentSyncService
	Query  *service.ContentQueryService
	Logger *zap.Logger
}

func (h *ContentHandler) Register(r *gin.Engine) {
	group := r.Group("/api/content")
	group.POST("/sync", h.runSync)
	group.GET("/sync-state", h.listSyncState)
	group.GET("/rows", h.listRows)
}

// @Summary Pull daily rows from the upstream feed
// @Tags content
// @Param date query string false "YYYY-MM-DD to pull; repeatable"
// @Param hemisphere query string false "Northern|Southern; repeatable, default both"
// @Param lookahead_days query int false "days past today when no date given"
// @Success 200 {object} apiResponse
// @Router /api/content/sync [post]
func (h *ContentHandler) runSync(c *gin.Context) {
	if h.Sync == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	result, err := h.Sync.Sync(c.Request.Context(), service.SyncOptions{
		Dates:         trimmedQueryArray(c, "date"),
		Hemispheres:   trimmedQueryArray(c, "hemisphere"),
		LookaheadDays: intQuery(c, "lookahead_days", 0),
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("content sync failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), map[string]any{"partial": result})
		return
	}
	Ok(c, result, nil)
}

// @Summary List sync states
// @Tags content
// @Success 200 {object} apiResponse
// @Router /api/content/sync-state [get]
func (h *ContentHandler) listSyncState(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	states, err := h.Query.ListSyncStates(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list sync state failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, states, nil)
}

// @Summary List stored daily rows
// @Tags content
// @Param date query string false "YYYY-MM-DD"
// @Param hemisphere query string false "Northern|Southern"
// @Param sign query string false "exact stored sign label"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param order_by query string false "date|sign|last_seen_at"
// @Param asc query bool false "ascending order"
// @Success 200 {object} apiResponse
// @Router /api/content/rows [get]
func (h *ContentHandler) listRows(c *gin.Context) {
	if h.Query == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	params := repository.ListDailyContentsParams{
		Date:    strQueryPtr(c, "date"),
		Sign:    strQueryPtr(c, "sign"),
		Limit:   intQuery(c, "limit", 0),
		Offset:  intQuery(c, "offset", 0),
		OrderBy: parseOrder(c.Query("order_by"), map[string]string{
			"date":         "date",
			"sign":         "sign",
			"last_seen_at": "last_seen_at",
		}),
		Asc: boolQueryPtr(c, "asc"),
	}
	if raw := strings.TrimSpace(c.Query("hemisphere")); raw != "" {
		norm := resolver.NormalizeHemisphere(raw)
		params.Hemisphere = &norm
	}
	result, err := h.Query.ListDailyContents(c.Request.Context(), params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("list rows failed", zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result.Items, map[string]any{"total": result.Total})
}

func trimmedQueryArray(c *gin.Context, key string) []string {
	var out []string
	for _, val := range c.QueryArray(key) {
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryDefault(c *gin.Context, key string, def bool) bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func boolQueryPtr(c *gin.Context, key string) *bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func parseOrder(value string, allow map[string]string) string {
	key := strings.TrimSpace(strings.ToLower(value))
	if key == "" {
		return ""
	}
	if mapped, ok := allow[key]; ok {
		return mapped
	}
	return ""
}
