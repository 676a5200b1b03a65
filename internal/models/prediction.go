package models

import (
	"fmt"
	"time"
)

// Earliest building year accepted. Records older than this predate the
// modern registry data the model is calibrated on.
const MinBuildingYear = 1900

// PredictionRequest is the JSON body accepted by the predict endpoint.
type PredictionRequest struct {
	Address      string  `json:"address"`
	Area         float64 `json:"area"`
	BuildingYear int     `json:"building_year"`
}

// Validate checks the request fields against the accepted input domain.
// Zero and negative areas and out-of-range building years are rejected
// rather than priced.
func (r PredictionRequest) Validate() error {
	if r.Address == "" {
		return fmt.Errorf("address is required")
	}
	if r.Area <= 0 {
		return fmt.Errorf("area must be a positive number")
	}
	if r.BuildingYear < MinBuildingYear || r.BuildingYear > time.Now().Year() {
		return fmt.Errorf("building_year must be between %d and %d", MinBuildingYear, time.Now().Year())
	}
	return nil
}

// PredictionResponse is the success body of the predict endpoint.
type PredictionResponse struct {
	Status    string  `json:"status"`
	Predicted float64 `json:"predicted"`
}

// ErrorResponse is the failure body of the predict endpoint.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PredictionLog is a persisted record of a served prediction.
type PredictionLog struct {
	ID           string    `json:"id"`
	Address      string    `json:"address"`
	Area         float64   `json:"area"`
	BuildingYear int       `json:"building_year"`
	Predicted    float64   `json:"predicted"`
	CreatedAt    time.Time `json:"created_at"`
}
