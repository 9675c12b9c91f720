package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"PredVal/internal/codec"
	"PredVal/internal/domain/models"
	"PredVal/internal/usecase"
	xhttp "PredVal/pkg/http"
	xlogger "PredVal/pkg/logger"
)

// ReportEchoHandler serves on-demand validation reports over HTTP.
type ReportEchoHandler struct {
	logger  *xlogger.Logger
	reports *usecase.ReportUseCase
}

func NewReportEchoHandler(logger *xlogger.Logger, reports *usecase.ReportUseCase) *ReportEchoHandler {
	return &ReportEchoHandler{logger: logger, reports: reports}
}

func (h *ReportEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	g := e.Group("/api")
	g.POST("/reports", h.CreateReport)
}

func (h *ReportEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// CreateReport decodes the posted rows, runs the pipeline and returns the
// windows along with their encoded report lines.
func (h *ReportEchoHandler) CreateReport(c echo.Context) error {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	policy, err := usecase.ParseEmptyWindowPolicy(req.EmptyWindowPolicy)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("empty_window_policy", err.Error()))
	}

	res, err := h.reports.Evaluate(c.Request().Context(), req.WindowSize, policy, req.Actual, req.Predicted)
	if err != nil {
		return h.errorResponse(c, err)
	}

	var resp models.ReportResponse = *res.Summary
	resp.WindowSize = req.WindowSize
	c.Response().Header().Set("X-Run-Id", res.RunID)
	return xhttp.SuccessResponse(c, resp)
}

func (h *ReportEchoHandler) errorResponse(c echo.Context, err error) error {
	var de *codec.DecodeError
	switch {
	case errors.As(err, &de):
		appErr := xhttp.BadRequestError("", de.Error()).WithParam("line", de.Line).WithError(err)
		return xhttp.AppErrorResponse(c, appErr)
	case errors.Is(err, usecase.ErrInvalidWindowSize):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("window_size", err.Error()))
	case errors.Is(err, usecase.ErrInsufficientData):
		var ew *usecase.EmptyWindowError
		appErr := xhttp.UnprocessableError("ERR_INSUFFICIENT_DATA", err.Error())
		if errors.As(err, &ew) {
			appErr.WithParam("start_time", ew.Start).WithParam("end_time", ew.End)
		}
		return xhttp.AppErrorResponse(c, appErr)
	}
	h.logger.Error("report usecase error", xlogger.Error(err))
	return xhttp.InternalServerErrorResponse(c)
}
