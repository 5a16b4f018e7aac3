package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	bookingserrors "hotelbook/internal/bookings/errors"
	"hotelbook/pkg/db/memory"
	"hotelbook/pkg/model"
)

type memoryBookingRepository struct {
	store *memory.Store
}

func NewMemoryBookingRepository(store *memory.Store) BookingRepository {
	return &memoryBookingRepository{store: store}
}

func (r *memoryBookingRepository) ExecuteBookingTransaction(ctx context.Context, hotelID, roomType string, fn TxFunc) error {
	err := r.store.RunInRoom(ctx, hotelID, roomType, func(txn *memory.Txn) error {
		return fn(ctx, &memoryTx{txn: txn})
	})
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", bookingserrors.ErrStoreUnavailable, err)
	}
	return err
}

type memoryTx struct {
	txn *memory.Txn
}

func (t *memoryTx) FindHotel(_ context.Context, hotelID string) (*model.Hotel, error) {
	hotel, err := t.txn.Hotel(hotelID)
	if errors.Is(err, memory.ErrHotelNotFound) {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrHotelNotFound, hotelID)
	}
	return hotel, err
}

func (t *memoryTx) FindRoomReservations(_ context.Context, hotelID, roomType string, from time.Time) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, res := range t.txn.Reservations(hotelID, roomType) {
		if res.EndDate.After(from) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (t *memoryTx) CreateReservation(_ context.Context, reservation *model.Reservation) error {
	t.txn.Insert(reservation)
	return nil
}

func (r *memoryBookingRepository) FindByID(_ context.Context, id string) (*model.Reservation, error) {
	res, err := r.store.GetReservation(id)
	if errors.Is(err, memory.ErrReservationNotFound) {
		return nil, bookingserrors.ErrNotFound
	}
	return res, err
}

func (r *memoryBookingRepository) FindByUser(_ context.Context, userID string, limit int, offset int64) ([]*model.Reservation, error) {
	all := r.store.Reservations(func(res *model.Reservation) bool { return res.UserID == userID })
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *memoryBookingRepository) CountByUser(_ context.Context, userID string) (int64, error) {
	return int64(len(r.store.Reservations(func(res *model.Reservation) bool { return res.UserID == userID }))), nil
}

func (r *memoryBookingRepository) FindByHotel(_ context.Context, hotelID string) ([]*model.Reservation, error) {
	all := r.store.Reservations(func(res *model.Reservation) bool { return res.HotelID == hotelID })
	sort.Slice(all, func(i, j int) bool { return all[i].StartDate.After(all[j].StartDate) })
	return all, nil
}

func (r *memoryBookingRepository) FindConfirmedInWindow(_ context.Context, hotelID string, from, to time.Time) ([]*model.Reservation, error) {
	return r.store.Reservations(func(res *model.Reservation) bool {
		return res.HotelID == hotelID &&
			res.Status == model.StatusConfirmed &&
			res.StartDate.Before(to) &&
			res.EndDate.After(from)
	}), nil
}

func (r *memoryBookingRepository) Ping(context.Context) error {
	return nil
}

func page(all []*model.Reservation, limit int, offset int64) []*model.Reservation {
	out := make([]*model.Reservation, 0)
	if offset >= int64(len(all)) {
		return out
	}
	end := int(offset) + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return append(out, all[offset:end]...)
}
