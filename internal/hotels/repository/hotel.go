package repository

import (
	"context"
	"strings"

	"hotelbook/pkg/model"
)

type HotelRepository interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	FindAll(ctx context.Context) ([]*model.Hotel, error)
	// Search returns the hotels whose location or name contains term,
	// ignoring case. An empty term matches every hotel.
	Search(ctx context.Context, term string) ([]*model.Hotel, error)
	Replace(ctx context.Context, hotel *model.Hotel) error
	Ping(ctx context.Context) error
}

// matches is the search predicate shared by the backends that filter in
// process.
func matches(h *model.Hotel, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(h.Location), term) ||
		strings.Contains(strings.ToLower(h.Name), term)
}
