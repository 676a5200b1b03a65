package handler

import (
	"context"
	"net/http"
	"strconv"

	"property-price-api/internal/models"

	"github.com/gin-gonic/gin"
)

// HistoryHandler handles prediction history requests
type HistoryHandler struct {
	service HistoryService
}

// Service interface for dependency injection
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]models.PredictionLog, error)
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(svc HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// Recent handles GET /predictions requests
//
//	@Summary		List recent predictions
//	@Produce		json
//	@Param			limit	query		int	false	"maximum number of entries"
//	@Success		200		{array}		models.PredictionLog
//	@Failure		400		{object}	map[string]string
//	@Router			/predictions [get]
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = n
	}

	logs, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if logs == nil {
		logs = []models.PredictionLog{}
	}
	c.JSON(http.StatusOK, logs)
}
