package repository

import (
	"context"
	"time"

	"hotelbook/pkg/model"
)

// Tx is the view of the inventory store inside one booking transaction.
// Reads observe a consistent snapshot and the write commits only together
// with them.
type Tx interface {
	FindHotel(ctx context.Context, hotelID string) (*model.Hotel, error)
	// FindRoomReservations returns the confirmed reservations of the room
	// that end after from.
	FindRoomReservations(ctx context.Context, hotelID, roomType string, from time.Time) ([]*model.Reservation, error)
	CreateReservation(ctx context.Context, reservation *model.Reservation) error
}

type TxFunc func(ctx context.Context, tx Tx) error

type BookingRepository interface {
	// ExecuteBookingTransaction runs fn in a transaction isolated against
	// every other transaction on the same (hotelID, roomType).
	ExecuteBookingTransaction(ctx context.Context, hotelID, roomType string, fn TxFunc) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	FindByHotel(ctx context.Context, hotelID string) ([]*model.Reservation, error)
	// FindConfirmedInWindow returns the confirmed reservations of a hotel
	// that overlap [from, to).
	FindConfirmedInWindow(ctx context.Context, hotelID string, from, to time.Time) ([]*model.Reservation, error)
	Ping(ctx context.Context) error
}
