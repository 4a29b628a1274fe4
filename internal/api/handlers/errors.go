package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/mealchain/internal/api/middleware"
	"github.com/andresuchdata/mealchain/internal/domain"
)

// respondError maps service errors to a status code. Unexpected failures
// are logged with their cause and reported without details.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRecipeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRecipe):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg(message)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
