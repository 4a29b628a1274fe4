package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/mealchain/internal/domain"
)

// ScalingService is the part of service.ScalingService the handler uses.
type ScalingService interface {
	Scale(ctx context.Context, req domain.ScalingRequest) (*domain.ScalingResponse, error)
}

type ScalingHandler struct {
	service ScalingService
}

func NewScalingHandler(service ScalingService) *ScalingHandler {
	return &ScalingHandler{service: service}
}

// Scale handles POST /production/scale.
func (h *ScalingHandler) Scale(c *gin.Context) {
	var req domain.ScalingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "invalid scaling request", fmt.Errorf("%v: %w", err, domain.ErrInvalidRequest))
		return
	}

	resp, err := h.service.Scale(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to scale recipe", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
