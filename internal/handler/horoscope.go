package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"astrolabe/internal/resolver"
)

type HoroscopeHandler struct {
	Resolver *resolver.Resolver
	Logger   *zap.Logger
}

func (h *HoroscopeHandler) Register(r *gin.Engine) {
	group := r.Group("/api/horoscope")
	group.GET("/daily", h.getDaily)
}

// @Summary Resolve daily horoscope content
// @Tags horoscope
// @Param sign query string true "sign label, cusp labels allowed (e.g. Aries or Aries-Taurus Cusp)"
// @Param hemisphere query string false "Northern|Southern (default Northern)"
// @Param date query string false "explicit date YYYY-MM-DD; replaces anchor fallback"
// @Param permissive query bool false "fall back to cusp component signs"
// @Param tz query string false "IANA time zone for the user-local anchor"
// @Param user_id query string false "cache scope; empty means anonymous"
// @Param no_cache query bool false "bypass cache reads and writes"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/horoscope/daily [get]
func (h *HoroscopeHandler) getDaily(c *gin.Context) {
	if h.Resolver == nil {
		Error(c, http.StatusInternalServerError, "resolver unavailable", nil)
		return
	}
	sign := strings.TrimSpace(c.Query("sign"))
	if sign == "" {
		Error(c, http.StatusBadRequest, "sign is required", nil)
		return
	}
	hemisphere := resolver.NormalizeHemisphere(c.Query("hemisphere"))

	opts := resolver.Options{
		Date:         strings.TrimSpace(c.Query("date")),
		Permissive:   boolQueryDefault(c, "permissive", false),
		DisableCache: boolQueryDefault(c, "no_cache", false),
		UserID:       strings.TrimSpace(c.Query("user_id")),
	}
	if tz := strings.TrimSpace(c.Query("tz")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			Error(c, http.StatusBadRequest, "unknown time zone", nil)
			return
		}
		opts.Location = loc
	}

	row, found, err := h.Resolver.Resolve(c.Request.Context(), sign, hemisphere, opts)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("daily resolve failed", zap.String("sign", sign), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if !found {
		Error(c, http.StatusNotFound, "no content for sign", map[string]any{
			"sign":       sign,
			"hemisphere": hemisphere,
		})
		return
	}
	Ok(c, row, map[string]any{"hemisphere": hemisphere})
}
