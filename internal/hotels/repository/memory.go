package repository

import (
	"context"
	"errors"
	"strings"

	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/pkg/db/memory"
	"hotelbook/pkg/model"
)

type memoryHotelRepository struct {
	store *memory.Store
}

func NewMemoryHotelRepository(store *memory.Store) HotelRepository {
	return &memoryHotelRepository{store: store}
}

func (r *memoryHotelRepository) Create(_ context.Context, hotel *model.Hotel) error {
	if err := r.store.InsertHotel(hotel); err != nil {
		if errors.Is(err, memory.ErrDuplicateID) {
			return hotelserrors.ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *memoryHotelRepository) FindByID(_ context.Context, id string) (*model.Hotel, error) {
	hotel, err := r.store.GetHotel(id)
	if errors.Is(err, memory.ErrHotelNotFound) {
		return nil, hotelserrors.ErrNotFound
	}
	return hotel, err
}

func (r *memoryHotelRepository) FindAll(_ context.Context) ([]*model.Hotel, error) {
	return nonNil(r.store.Hotels(nil)), nil
}

func (r *memoryHotelRepository) Search(_ context.Context, term string) ([]*model.Hotel, error) {
	term = strings.TrimSpace(term)
	return nonNil(r.store.Hotels(func(h *model.Hotel) bool { return matches(h, term) })), nil
}

func (r *memoryHotelRepository) Replace(_ context.Context, hotel *model.Hotel) error {
	if err := r.store.ReplaceHotel(hotel); err != nil {
		if errors.Is(err, memory.ErrHotelNotFound) {
			return hotelserrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *memoryHotelRepository) Ping(context.Context) error {
	return nil
}

func nonNil(hotels []*model.Hotel) []*model.Hotel {
	if hotels == nil {
		return make([]*model.Hotel, 0)
	}
	return hotels
}
