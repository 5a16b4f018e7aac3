package pricing

import (
	"context"
	"fmt"
	"time"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/sanitizer"
	"hotelbook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type SeasonalModel struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewSeasonalModel(log *logger.Logger) *SeasonalModel {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize prediction validator", "error", err)
	}
	return &SeasonalModel{validate: v, log: log}
}

// Season returns the price multiplier of month and its label. Jun-Sep is
// high season, Dec-Feb low season.
func Season(month time.Month) (float64, string) {
	switch month {
	case time.June, time.July, time.August, time.September:
		return 1.5, ReasonHighSeason
	case time.December, time.January, time.February:
		return 0.8, ReasonLowSeason
	default:
		return 1.0, ReasonStandard
	}
}

func (m *SeasonalModel) Predict(_ context.Context, req PredictionRequest) PredictionResponse {
	if req.BasePrice == 0 {
		req.BasePrice = DefaultBasePrice
	}
	if req.RoomType == "" {
		req.RoomType = DefaultRoomType
	}

	if err := validation.Struct(m.validate, req); err != nil {
		m.log.Warn("Prediction failed, using base price", "base_price", req.BasePrice, "date", req.Date, "error", err)
		return PredictionResponse{
			PredictedPrice: sanitizer.RoundPrice(max(req.BasePrice, 0)),
			Reason:         fmt.Sprintf("Prediction Failed (Fallback Used). Error: %s", err),
		}
	}

	date, _ := time.Parse(model.DateLayout, req.Date)
	multiplier, reason := Season(date.Month())
	resp := PredictionResponse{
		PredictedPrice: sanitizer.RoundPrice(req.BasePrice * multiplier),
		Multiplier:     multiplier,
		Reason:         reason,
	}

	m.log.Debug("Price predicted",
		"base_price", req.BasePrice,
		"date", req.Date,
		"room_type", req.RoomType,
		"predicted_price", resp.PredictedPrice,
	)
	return resp
}
