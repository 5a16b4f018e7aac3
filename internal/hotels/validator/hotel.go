package validator

import (
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type HotelValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewHotelValidator(log *logger.Logger) *HotelValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize hotel validator", "error", err)
	}

	return &HotelValidator{
		validate: v,
		logger:   log,
	}
}

// Validate checks an admin hotel payload after normalization. Room types must
// be unique within a hotel; every room class needs a capacity of at least one
// guest and a positive nightly price.
func (v *HotelValidator) Validate(in *model.HotelInput) error {
	return validation.Struct(v.validate, in)
}
