package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-advisor/internal/domain/advisor"
)

const homeBanner = "<p><h2>KMA HW1: Go SaaS.</h2></p>"

// Handler wires the HTTP transport to the advisor domain.
type Handler struct {
	advisorSvc advisor.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(advisorSvc advisor.Service, logger *slog.Logger) *Handler {
	return &Handler{
		advisorSvc: advisorSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Home serves the static landing banner.
func (h *Handler) Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homeBanner))
}

// GetWeather returns the day's forecast together with AI clothing advice.
func (h *Handler) GetWeather(c *gin.Context) {
	var req advisor.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, codeInvalidRequest, "invalid request body", err))
		return
	}

	resp, err := h.advisorSvc.Advise(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, adviseError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func adviseError(err error) *HTTPError {
	var upstream *advisor.UpstreamWeatherError
	if !errors.As(err, &upstream) {
		return asHTTPError(err)
	}
	// Provider 4xx/5xx statuses are echoed to the caller. Anything else would
	// make a failed lookup look successful or redirect, so it becomes 502.
	status := upstream.StatusCode
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusBadGateway
	}
	return NewHTTPError(status, codeUpstreamWeather, upstream.Body, err)
}
