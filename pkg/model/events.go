package model

import "time"

const EventBookingConfirmed = "booking.confirmed"

// BookingEvent is the payload published for every committed reservation.
type BookingEvent struct {
	EventID       string    `json:"eventId"`
	EventType     string    `json:"eventType"`
	ReservationID string    `json:"reservationId"`
	HotelID       string    `json:"hotelId"`
	HotelName     string    `json:"hotelName,omitempty"`
	RoomType      string    `json:"roomType"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	GuestCount    int       `json:"guestCount"`
	TotalPrice    float64   `json:"totalPrice"`
	UserID        string    `json:"userId"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	PublishedAt   time.Time `json:"publishedAt"`
}

func NewBookingEvent(eventID string, r *Reservation) BookingEvent {
	return BookingEvent{
		EventID:       eventID,
		EventType:     EventBookingConfirmed,
		ReservationID: r.ID,
		HotelID:       r.HotelID,
		HotelName:     r.HotelName,
		RoomType:      r.RoomType,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		GuestCount:    r.GuestCount,
		TotalPrice:    r.TotalPrice,
		UserID:        r.UserID,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		PublishedAt:   time.Now().UTC(),
	}
}
