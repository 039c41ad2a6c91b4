package api

import (
	"time"

	drepo "VolSentry/internal/domain/repository"
	"VolSentry/internal/services/analytics"
	"VolSentry/internal/services/settings"
	"VolSentry/internal/usecase"
	xhttp "VolSentry/pkg/http"
	xlogger "VolSentry/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatusHandler exposes the tracker state over HTTP: liveness, current
// settings and alert counters. It reads the same shared state the Telegram
// commands do, so both surfaces always agree.
type StatusHandler struct {
	logger    *xlogger.Logger
	collector *usecase.TradeCollector
	tracker   *usecase.TradeTracker
	settings  *settings.Settings
	engine    *analytics.AlertEngine
	store     drepo.SettingsStore
	symbol    string
}

func NewStatusHandler(
	logger *xlogger.Logger,
	collector *usecase.TradeCollector,
	tracker *usecase.TradeTracker,
	st *settings.Settings,
	engine *analytics.AlertEngine,
	store drepo.SettingsStore,
	symbol string,
) *StatusHandler {
	return &StatusHandler{
		logger:    logger,
		collector: collector,
		tracker:   tracker,
		settings:  st,
		engine:    engine,
		store:     store,
		symbol:    symbol,
	}
}

func (h *StatusHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.GET("/status", h.Status)
	g.GET("/stats", h.Stats)
	g.POST("/settings", h.UpdateSettings)
}

// HealthResponse reports stream connectivity.
type HealthResponse struct {
	Status    string `json:"status"`
	Connected bool   `json:"connected"`
	Symbol    string `json:"symbol"`
}

// StatusResponse mirrors the /status Telegram report.
type StatusResponse struct {
	Symbol         string  `json:"symbol"`
	ZThreshold     float64 `json:"z_threshold"`
	VolumeRatio    float64 `json:"volume_threshold"`
	Cooldown       int     `json:"alert_cooldown"`
	WhaleThreshold float64 `json:"whale_threshold"`
	Paused         bool    `json:"paused"`
	Connected      bool    `json:"connected"`
	UptimeSeconds  int64   `json:"uptime_seconds"`
}

// StatsResponse mirrors the /stats Telegram report.
type StatsResponse struct {
	AlertCount    int64   `json:"alert_count"`
	WhaleCount    int64   `json:"whale_count"`
	LastAlertUnix int64   `json:"last_alert_unix"`
	LastPrice     float64 `json:"last_price"`
	LastVolume    float64 `json:"last_volume"`
	LastZScore    float64 `json:"last_z_score"`
	StartedAt     string  `json:"started_at"`
}

// UpdateSettingsRequest carries partial settings updates; absent fields
// are left unchanged. Ranges match the Telegram commands.
type UpdateSettingsRequest struct {
	ZThreshold     *float64 `json:"z_threshold" validate:"omitempty,gte=0.5,lte=20"`
	VolumeRatio    *float64 `json:"volume_threshold" validate:"omitempty,gte=1,lte=100"`
	Cooldown       *int     `json:"alert_cooldown" validate:"omitempty,gte=10,lte=3600"`
	WhaleThreshold *float64 `json:"whale_threshold" validate:"omitempty,gte=10000"`
	Paused         *bool    `json:"paused"`
}

func (h *StatusHandler) Health(c echo.Context) error {
	resp := HealthResponse{Connected: h.collector.IsConnected(), Symbol: h.symbol}
	if !resp.Connected {
		resp.Status = "degraded"
		return xhttp.ServiceUnavailableResponse(c, resp)
	}
	resp.Status = "ok"
	return xhttp.SuccessResponse(c, resp)
}

func (h *StatusHandler) Status(c echo.Context) error {
	st := h.settings.Snapshot()
	return xhttp.SuccessResponse(c, StatusResponse{
		Symbol:         h.symbol,
		ZThreshold:     st.ZThreshold,
		VolumeRatio:    st.VolumeRatio,
		Cooldown:       st.CooldownSeconds,
		WhaleThreshold: st.WhaleThreshold,
		Paused:         st.Paused,
		Connected:      h.collector.IsConnected(),
		UptimeSeconds:  int64(time.Since(h.tracker.StartedAt()).Seconds()),
	})
}

func (h *StatusHandler) Stats(c echo.Context) error {
	stats := h.engine.Stats()
	return xhttp.SuccessResponse(c, StatsResponse{
		AlertCount:    stats.AlertCount,
		WhaleCount:    stats.WhaleCount,
		LastAlertUnix: stats.LastAlertUnix,
		LastPrice:     stats.LastPrice,
		LastVolume:    stats.LastVolume,
		LastZScore:    stats.LastZScore,
		StartedAt:     h.tracker.StartedAt().Format(time.RFC3339),
	})
}

func (h *StatusHandler) UpdateSettings(c echo.Context) error {
	req := &UpdateSettingsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if req.ZThreshold != nil {
		if err := h.settings.SetZThreshold(*req.ZThreshold); err != nil {
			return xhttp.BadRequestResponse(c, err.Error())
		}
	}
	if req.VolumeRatio != nil {
		if err := h.settings.SetVolumeRatio(*req.VolumeRatio); err != nil {
			return xhttp.BadRequestResponse(c, err.Error())
		}
	}
	if req.Cooldown != nil {
		if err := h.settings.SetCooldown(*req.Cooldown); err != nil {
			return xhttp.BadRequestResponse(c, err.Error())
		}
	}
	if req.WhaleThreshold != nil {
		if err := h.settings.SetWhaleThreshold(*req.WhaleThreshold); err != nil {
			return xhttp.BadRequestResponse(c, err.Error())
		}
	}
	if req.Paused != nil {
		h.settings.SetPaused(*req.Paused)
	}

	st := h.settings.Snapshot()
	if err := h.store.Persist(c.Request().Context(), st); err != nil {
		h.logger.Error("settings persist failed", xlogger.Error(err))
	}
	return xhttp.SuccessResponse(c, st)
}
