package handler

import (
	"context"
	"net/http"

	"property-price-api/internal/metrics"
	"property-price-api/internal/models"

	"github.com/gin-gonic/gin"
)

// Response status values of the predict endpoint.
const (
	StatusOK = "OK"
	StatusNG = "NG"
)

// PredictHandler handles price prediction requests
type PredictHandler struct {
	service PredictService
}

// Service interface for dependency injection
type PredictService interface {
	Predict(ctx context.Context, req models.PredictionRequest) (float64, error)
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(svc PredictService) *PredictHandler {
	return &PredictHandler{service: svc}
}

// Predict handles POST /predict requests
//
//	@Summary		Predict property price
//	@Description	Predicts the market price of a residential property from its address, floor area and building year.
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.PredictionRequest	true	"property to price"
//	@Success		200		{object}	models.PredictionResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/predict [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PredictionsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Status: StatusNG, Message: "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		metrics.PredictionsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Status: StatusNG, Message: err.Error()})
		return
	}

	predicted, err := h.service.Predict(c.Request.Context(), req)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Status: StatusNG, Message: "internal server error"})
		return
	}

	metrics.PredictionsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, models.PredictionResponse{Status: StatusOK, Predicted: predicted})
}
