package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Astrolabe Service

Offline planetary positions and daily horoscope content.

## Routes

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- GET /api/horoscope/daily?sign=&hemisphere=&date=&permissive=
- GET /api/content/rows
- GET /api/content/sync-state
- POST /api/content/sync
- GET /api/ephemeris/positions?at=
- GET /api/ephemeris/moon?at=
- GET /api/apod?date=
- GET /ws/updates (websocket)

## Notes

Sign labels accept cusp forms ("Aries-Taurus Cusp"); pass permissive=true to
fall back to the component signs when no cusp row exists. Hemisphere defaults
to Northern.
`)
	})
}
