package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// ForecastService is the part of service.ForecastService the handler uses.
type ForecastService interface {
	Run(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResponse, error)
	InvalidateCache(ctx context.Context) error
	Seasonality() domain.SeasonalityProfile
}

type ForecastHandler struct {
	service ForecastService
}

func NewForecastHandler(service ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// RunForecast handles POST /inventory/forecast. An empty body runs with defaults.
func (h *ForecastHandler) RunForecast(c *gin.Context) {
	var req domain.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, "invalid forecast request", fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest))
		return
	}

	resp, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to run forecast", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSeasonality handles GET /inventory/forecast/seasonality.
func (h *ForecastHandler) GetSeasonality(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Seasonality())
}

// InvalidateCache handles DELETE /inventory/forecast/cache.
func (h *ForecastHandler) InvalidateCache(c *gin.Context) {
	if err := h.service.InvalidateCache(c.Request.Context()); err != nil {
		respondError(c, "failed to invalidate forecast cache", err)
		return
	}
	c.Status(http.StatusNoContent)
}
