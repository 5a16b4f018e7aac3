// Package pricing predicts the nightly price of a room for a given date.
// SeasonalModel is the model served by the pricing service; Client is its
// fail-open remote counterpart used by the hotel service.
package pricing

import "context"

const (
	ReasonHighSeason  = "High Season (Summer)"
	ReasonLowSeason   = "Low Season (Winter)"
	ReasonStandard    = "Standard Season"
	ReasonUnavailable = "ML Unavailable"

	DefaultBasePrice = 100
	DefaultRoomType  = "Standard"
)

type PredictionRequest struct {
	BasePrice float64 `json:"basePrice" validate:"gte=0"`
	Date      string  `json:"date" validate:"required,iso_date"`
	RoomType  string  `json:"roomType,omitempty" validate:"omitempty,max=50"`
}

type PredictionResponse struct {
	PredictedPrice float64 `json:"predictedPrice"`
	Multiplier     float64 `json:"multiplier,omitempty"`
	Reason         string  `json:"reason"`
}

// Predictor never fails: when no prediction can be made it answers with the
// base price and a reason.
type Predictor interface {
	Predict(ctx context.Context, req PredictionRequest) PredictionResponse
}
