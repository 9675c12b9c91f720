package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogger "PredVal/pkg/logger"
)

type testHandler struct{}

func (testHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ok", func(c echo.Context) error { return SuccessResponse(c, "fine") })
	e.GET("/boom", func(c echo.Context) error { panic("boom") })
	e.POST("/validate", func(c echo.Context) error {
		req := &struct {
			Size   int    `json:"size" validate:"required,gte=1"`
			Policy string `json:"policy" default:"fail" validate:"oneof=fail null"`
		}{}
		if verr := ReadAndValidateRequest(c, req); verr != nil {
			return BadRequestResponse(c, verr)
		}
		return SuccessResponse(c, req)
	})
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestServerMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewServer(testHandler{}, WithRegistry(reg), WithLogger(applogger.Nop()))

	require.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/ok").Code)

	rec := serve(s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `predval_http_requests_total{method="GET",route="/ok",status="200"} 1`)
}

func TestServerRecoversPanics(t *testing.T) {
	s := NewServer(testHandler{}, WithLogger(applogger.Nop()))
	rec := serve(s, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReadAndValidateRequest(t *testing.T) {
	s := NewServer(testHandler{})

	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_REQUIRED")
}

func TestAppErrorResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := UnprocessableError("ERR_INSUFFICIENT_DATA", "window [1, 2] has no errors")
	require.NoError(t, AppErrorResponse(c, err))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_INSUFFICIENT_DATA")
}
