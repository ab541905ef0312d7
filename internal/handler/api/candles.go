package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"CandleCache/internal/domain/models"
	drepo "CandleCache/internal/domain/repository"
	"CandleCache/internal/usecase"
	xhttp "CandleCache/pkg/http"
	xlogger "CandleCache/pkg/logger"
)

// CandlesHandler exposes the candle service over HTTP. It is a thin adapter:
// all policy lives in the usecase.
type CandlesHandler struct {
	logger *xlogger.Logger
	svc    *usecase.CandleService
	store  drepo.CandleStore
}

func NewCandlesHandler(logger *xlogger.Logger, svc *usecase.CandleService, store drepo.CandleStore) *CandlesHandler {
	return &CandlesHandler{logger: logger, svc: svc, store: store}
}

func (h *CandlesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/candles", h.GetCandles)
	// same handler at the root for callers not going through the /api prefix
	e.GET("/candles", h.GetCandles)
	e.GET("/healthz", h.Health)
}

// candlesRequest is the query contract of GET /api/candles. Interval is
// accepted for compatibility with chart callers but daily is the only
// granularity fetched.
type candlesRequest struct {
	Symbol   string `query:"symbol" validate:"required"`
	Limit    int    `query:"limit" default:"100" validate:"lte=10000"`
	Interval string `query:"interval" default:"1h"`
}

func (h *CandlesHandler) GetCandles(c echo.Context) error {
	req := &candlesRequest{}
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		for _, ve := range verrs {
			if ve.Field == "Symbol" {
				return xhttp.BadRequestResponse(c, "Missing symbol")
			}
		}
		return xhttp.BadRequestResponse(c, verrs[0].Message)
	}

	summary, err := h.svc.GetQuote(c.Request().Context(), req.Symbol, req.Limit)
	if err != nil {
		return h.errorResponse(c, req.Symbol, err)
	}

	return xhttp.SuccessResponse(c, summary)
}

func (h *CandlesHandler) errorResponse(c echo.Context, symbol string, err error) error {
	var nde *models.NoDataError
	if errors.As(err, &nde) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(nde.Error()))
	}

	var ue *models.UpstreamError
	if errors.As(err, &ue) {
		h.logger.Error("upstream fetch failed", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("Failed to fetch data from stooq").WithError(err))
	}

	h.logger.Error("candles request failed", xlogger.String("symbol", symbol), xlogger.Error(err))
	return xhttp.InternalServerErrorResponse(c)
}

func (h *CandlesHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		h.logger.Warn("health check failed", xlogger.Error(err))
		return xhttp.ErrorResponse(c, http.StatusServiceUnavailable, "store unavailable")
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
