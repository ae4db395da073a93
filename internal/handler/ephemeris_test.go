package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"astrolabe/internal/ephemeris"
)

func newEphemerisRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := &EphemerisHandler{Engine: ephemeris.NewEngine(), Fallback: ephemeris.NewFallback()}
	h.Register(router)
	return router
}

func TestGetPositions(t *testing.T) {
	router := newEphemerisRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ephemeris/positions?at=2000-01-01T12:00:00Z", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data []ephemeris.Position `json:"data"`
		Meta map[string]any       `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != len(ephemeris.Planets) {
		t.Fatalf("got %d positions, want %d", len(resp.Data), len(ephemeris.Planets))
	}
	if resp.Meta["source"] != "engine" {
		t.Fatalf("source = %v, want engine", resp.Meta["source"])
	}
}

func TestGetPositionsFallbackSource(t *testing.T) {
	router := newEphemerisRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ephemeris/positions?source=fallback", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Meta map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Meta["source"] != "fallback" {
		t.Fatalf("source = %v, want fallback", resp.Meta["source"])
	}
}

func TestGetPositionsRejectsBadInstant(t *testing.T) {
	router := newEphemerisRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ephemeris/positions?at=yesterday", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetMoon(t *testing.T) {
	router := newEphemerisRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ephemeris/moon?at=2000-01-06T18:14:00Z", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data ephemeris.MoonPhase `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Phase != "New Moon" {
		t.Fatalf("phase = %q, want New Moon", resp.Data.Phase)
	}
}
