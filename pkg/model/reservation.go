package model

import "time"

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

type Reservation struct {
	ID         string    `json:"id" bson:"_id"`
	HotelID    string    `json:"hotelId" bson:"hotel_id"`
	HotelName  string    `json:"hotelName,omitempty" bson:"hotel_name"`
	RoomType   string    `json:"roomType" bson:"room_type"`
	StartDate  time.Time `json:"startDate" bson:"start_date"`
	EndDate    time.Time `json:"endDate" bson:"end_date"`
	GuestCount int       `json:"guestCount" bson:"guest_count"`
	TotalPrice float64   `json:"totalPrice" bson:"total_price"`
	UserID     string    `json:"userId" bson:"user_id"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// BookingRequest is the client payload of a booking attempt. Dates are ISO
// calendar dates; the end date is exclusive.
type BookingRequest struct {
	HotelID    string  `json:"hotelId" validate:"required,max=64"`
	RoomType   string  `json:"roomType" validate:"required,max=50"`
	StartDate  string  `json:"startDate" validate:"required,iso_date"`
	EndDate    string  `json:"endDate" validate:"required,iso_date"`
	GuestCount int     `json:"guestCount" validate:"required,min=1,max=50"`
	TotalPrice float64 `json:"totalPrice" validate:"required,gt=0"`
}
