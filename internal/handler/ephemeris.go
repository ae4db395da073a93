package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"astrolabe/internal/ephemeris"
)

type EphemerisHandler struct {
	Engine   *ephemeris.Engine
	Fallback *ephemeris.Fallback
	Logger   *zap.Logger
}

func (h *EphemerisHandler) Register(r *gin.Engine) {
	group := r.Group("/api/ephemeris")
	group.GET("/positions", h.getPositions)
	group.GET("/moon", h.getMoon)
}

// @Summary Planetary positions for an instant
// @Tags ephemeris
// @Param at query string false "RFC3339 instant; default now"
// @Param source query string false "engine|fallback (default engine)"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/ephemeris/positions [get]
func (h *EphemerisHandler) getPositions(c *gin.Context) {
	at, ok := instantQuery(c)
	if !ok {
		return
	}

	source := strings.ToLower(strings.TrimSpace(c.Query("source")))
	var positions []ephemeris.Position
	if source == "fallback" && h.Fallback != nil {
		positions = h.Fallback.Positions(at)
	} else {
		source = "engine"
		positions = h.Engine.Positions(at)
		if h.Fallback != nil {
			h.Fallback.Remember(positions)
		}
	}
	if h.Logger != nil {
		h.Logger.Debug("positions computed", zap.String("source", source), zap.Time("at", at))
	}
	Ok(c, positions, map[string]any{
		"at":     at.UTC().Format(time.RFC3339),
		"source": source,
	})
}

// @Summary Moon phase for an instant
// @Tags ephemeris
// @Param at query string false "RFC3339 instant; default now"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/ephemeris/moon [get]
func (h *EphemerisHandler) getMoon(c *gin.Context) {
	at, ok := instantQuery(c)
	if !ok {
		return
	}
	phase := ephemeris.MoonPhaseAt(at)
	Ok(c, phase, map[string]any{"at": at.UTC().Format(time.RFC3339)})
}

func instantQuery(c *gin.Context) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query("at"))
	if raw == "" {
		return time.Now().UTC(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		Error(c, http.StatusBadRequest, "at must be RFC3339", nil)
		return time.Time{}, false
	}
	return at, true
}
