package api

import (
	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/usecase"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OutlookHandler exposes the scoring and allocation engine over HTTP.
type OutlookHandler struct {
	logger  *xlogger.Logger
	outlook *usecase.OutlookUsecase
	history *usecase.HistoryUsecase
}

func NewOutlookHandler(logger *xlogger.Logger, outlook *usecase.OutlookUsecase, history *usecase.HistoryUsecase) *OutlookHandler {
	return &OutlookHandler{logger: logger, outlook: outlook, history: history}
}

func (h *OutlookHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.GET("/outlook", h.Outlook)
	g.GET("/score", h.Score)
	g.GET("/allocation", h.Allocation)
	g.GET("/indicators", h.Indicators)
	g.GET("/history", h.History)
	g.GET("/signals", h.Signals)
	g.GET("/correlation", h.Correlation)
	g.POST("/refresh", h.Refresh)
}

func (h *OutlookHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Outlook returns the full evaluation: scores plus allocation guidance.
func (h *OutlookHandler) Outlook(c echo.Context) error {
	req := &models.OutlookRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.outlook.Evaluate(c.Request().Context(), req.Cached())
	if err != nil {
		h.logger.Error("outlook usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("indicator data unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Score returns category and composite scores without allocation guidance.
func (h *OutlookHandler) Score(c echo.Context) error {
	req := &models.OutlookRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.outlook.Score(c.Request().Context(), req.Cached())
	if err != nil {
		h.logger.Error("score usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("indicator data unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Allocation maps a caller-provided score onto an allocation.
func (h *OutlookHandler) Allocation(c echo.Context) error {
	req := &models.AllocationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.outlook.Allocation(*req.Score))
}

// Indicators returns the collected snapshot per indicator.
func (h *OutlookHandler) Indicators(c echo.Context) error {
	req := &models.OutlookRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.outlook.Snapshots(c.Request().Context(), req.Cached())
	if err != nil {
		h.logger.Error("indicators usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("indicator data unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// History returns the reconstructed composite score series.
func (h *OutlookHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	points, err := h.history.History(c.Request().Context(), req.Days, req.Cached())
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("indicator data unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"days":   req.Days,
		"points": points,
	})
}

// Signals returns stock-exposure signals vs the benchmark.
func (h *OutlookHandler) Signals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	signals, err := h.history.Signals(c.Request().Context(), req.Days, req.Cached())
	if err != nil {
		h.logger.Error("signals usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("benchmark data unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"days":    req.Days,
		"signals": signals,
	})
}

// Correlation returns the score/benchmark Pearson coefficient.
func (h *OutlookHandler) Correlation(c echo.Context) error {
	req := &models.CorrelationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	corr, ok, err := h.history.Correlation(c.Request().Context(), req.Days, req.Cached())
	if err != nil {
		h.logger.Error("correlation usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("benchmark data unavailable").WithError(err))
	}
	if !ok {
		return xhttp.NotFoundResponse(c, "not enough matched points for a correlation")
	}
	return xhttp.SuccessResponse(c, corr)
}

// Refresh forces a fresh collection, bypassing and repopulating the cache.
func (h *OutlookHandler) Refresh(c echo.Context) error {
	if err := h.outlook.Refresh(c.Request().Context()); err != nil {
		h.logger.Error("refresh usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("indicator data unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "refreshed"})
}
