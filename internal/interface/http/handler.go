package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
	apperrors "github.com/yanqian/uv-exposure/pkg/errors"
)

// Handler wires the HTTP transport to the exposure service.
type Handler struct {
	exposureSvc uvexposure.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(exposureSvc uvexposure.Service, logger *slog.Logger) *Handler {
	return &Handler{
		exposureSvc: exposureSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Exposure returns the full-day curve and, when a window is given, the UV dose.
// Inputs are read from the JSON body, a form, or the query string.
func (h *Handler) Exposure(c *gin.Context) {
	var req uvexposure.Request
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.exposureSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromServiceError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Plot renders the full-day curve for ?city= as a PNG.
func (h *Handler) Plot(c *gin.Context) {
	img, err := h.exposureSvc.Plot(c.Request.Context(), c.Query("city"))
	if err != nil {
		abortWithError(c, fromServiceError(err))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", img)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func fromServiceError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeLocationNotFound:
		status = http.StatusNotFound
	case apperrors.CodeWeatherError, apperrors.CodeSunTimesMissing, apperrors.CodeSunTimesInvalid:
		status = http.StatusBadGateway
	}
	if code == "" {
		code = "internal_error"
	}
	return NewHTTPError(status, code, publicMessage(err), err)
}

// publicMessage hides upstream details behind the AppError message.
func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "something went wrong"
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
