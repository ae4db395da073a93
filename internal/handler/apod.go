package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"astrolabe/internal/service"
)

type ApodHandler struct {
	Service *service.ApodService
	Logger  *zap.Logger
}

func (h *ApodHandler) Register(r *gin.Engine) {
	r.GET("/api/apod", h.getPicture)
}

// @Summary Astronomy picture of the day
// @Tags apod
// @Param date query string false "YYYY-MM-DD; default today UTC"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/apod [get]
func (h *ApodHandler) getPicture(c *gin.Context) {
	if h.Service == nil || !h.Service.Enabled() {
		Error(c, http.StatusNotFound, "picture of the day is not enabled", nil)
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	entry, err := h.Service.Get(c.Request.Context(), date)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("apod fetch failed", zap.String("date", date), zap.Error(err))
		}
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, entry, nil)
}
