package validator

import (
	"errors"
	"testing"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/validation"
)

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		HotelID:    "h1",
		RoomType:   "Standard",
		StartDate:  "2025-07-01",
		EndDate:    "2025-07-05",
		GuestCount: 2,
		TotalPrice: 800,
	}
}

func TestValidate_Valid(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	stay, err := v.Validate(validRequest(), "u1")
	if err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if stay.Range.Nights() != 4 {
		t.Errorf("expected 4 nights, got %d", stay.Range.Nights())
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.BookingRequest)
		userID string
		field  string
	}{
		{"end equals start", func(r *model.BookingRequest) { r.EndDate = r.StartDate }, "u1", "endDate"},
		{"end before start", func(r *model.BookingRequest) { r.EndDate = "2025-06-30" }, "u1", "endDate"},
		{"bad date format", func(r *model.BookingRequest) { r.StartDate = "01.07.2025" }, "u1", "startDate"},
		{"missing hotel", func(r *model.BookingRequest) { r.HotelID = "" }, "u1", "hotelId"},
		{"blank room type", func(r *model.BookingRequest) { r.RoomType = "   " }, "u1", "roomType"},
		{"zero guests", func(r *model.BookingRequest) { r.GuestCount = 0 }, "u1", "guestCount"},
		{"non-positive price", func(r *model.BookingRequest) { r.TotalPrice = -1 }, "u1", "totalPrice"},
		{"missing user", func(r *model.BookingRequest) {}, "", "userId"},
	}

	v := NewBookingValidator(logger.Discard())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := v.Validate(req, tt.userID)
			var errs validation.ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %s, got %v", tt.field, errs)
			}
		})
	}
}

func TestValidateHotelQuery(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	if err := v.ValidateHotelQuery(" "); err == nil {
		t.Error("expected error for blank hotel id")
	}
	if err := v.ValidateHotelQuery("h1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
