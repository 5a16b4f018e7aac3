package validator

import (
	"strings"

	"hotelbook/internal/bookings/availability"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize booking validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// Stay is a validated booking request with parsed dates.
type Stay struct {
	HotelID    string
	RoomType   string
	Range      availability.DateRange
	GuestCount int
	TotalPrice float64
}

// Validate checks the request shape and returns the parsed stay. The end
// date is exclusive and must fall after the start date.
func (v *BookingValidator) Validate(req *model.BookingRequest, userID string) (*Stay, error) {
	var errs validation.ValidationErrors

	if strings.TrimSpace(userID) == "" {
		errs = append(errs, validation.ValidationError{Field: "userId", Message: "userId is required"})
	}

	if err := validation.Struct(v.validate, req); err != nil {
		structErrs, ok := err.(validation.ValidationErrors)
		if !ok {
			return nil, err
		}
		return nil, append(errs, structErrs...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	start, _ := availability.ParseDate(req.StartDate)
	end, _ := availability.ParseDate(req.EndDate)
	stay := &Stay{
		HotelID:    strings.TrimSpace(req.HotelID),
		RoomType:   strings.TrimSpace(req.RoomType),
		Range:      availability.DateRange{Start: start, End: end},
		GuestCount: req.GuestCount,
		TotalPrice: req.TotalPrice,
	}

	if !stay.Range.Valid() {
		return nil, validation.ValidationErrors{{
			Field:   "endDate",
			Message: "endDate must be after startDate",
		}}
	}
	if stay.HotelID == "" || stay.RoomType == "" {
		return nil, validation.ValidationErrors{{
			Field:   "roomType",
			Message: "hotelId and roomType cannot be blank",
		}}
	}

	return stay, nil
}

// ValidateHotelQuery checks an admin listing filter.
func (v *BookingValidator) ValidateHotelQuery(hotelID string) error {
	if strings.TrimSpace(hotelID) == "" {
		return validation.ValidationErrors{{Field: "hotel_id", Message: "hotel_id is required"}}
	}
	return nil
}
