package service

import (
	"context"
	"errors"
	"time"

	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/internal/hotels/repository"
	"hotelbook/internal/hotels/validator"
	"hotelbook/pkg/cache"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
	"hotelbook/pkg/sanitizer"
	"hotelbook/pkg/validation"

	"github.com/google/uuid"
)

const invalidateTimeout = 2 * time.Second

// SearchCache is the read-through cache in front of hotel search.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]*model.Hotel, bool)
	Set(ctx context.Context, key string, hotels []*model.Hotel)
	InvalidateAll(ctx context.Context) error
}

type HotelService interface {
	Search(ctx context.Context, location string) ([]*model.Hotel, error)
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	ListAll(ctx context.Context) ([]*model.Hotel, error)
	Create(ctx context.Context, in *model.HotelInput) (*model.Hotel, error)
	Update(ctx context.Context, id string, in *model.HotelInput) (*model.Hotel, error)
}

type hotelService struct {
	repo      repository.HotelRepository
	validator *validator.HotelValidator
	cache     SearchCache
	cfg       *config.Config
}

func NewHotelService(
	repo repository.HotelRepository,
	validator *validator.HotelValidator,
	cache SearchCache,
	cfg *config.Config,
) HotelService {
	return &hotelService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		cfg:       cfg,
	}
}

// Search serves from the cache when it can. Any cache fault falls through to
// the store, and only store results are written back.
func (s *hotelService) Search(ctx context.Context, location string) ([]*model.Hotel, error) {
	key := cache.Key(location)
	if s.cache != nil {
		if hotels, ok := s.cache.Get(ctx, key); ok {
			return hotels, nil
		}
	}

	hotels, err := s.repo.Search(ctx, location)
	if err != nil {
		return nil, s.storeError("Failed to search hotels", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, hotels)
	}
	return hotels, nil
}

func (s *hotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	hotel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Hotel", id)
		}
		return nil, s.storeError("Failed to retrieve hotel", err)
	}
	return hotel, nil
}

func (s *hotelService) ListAll(ctx context.Context) ([]*model.Hotel, error) {
	hotels, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.storeError("Failed to list hotels", err)
	}
	return hotels, nil
}

func (s *hotelService) Create(ctx context.Context, in *model.HotelInput) (*model.Hotel, error) {
	if err := s.prepare(in); err != nil {
		return nil, err
	}

	hotel := newHotel(uuid.NewString(), in)
	if err := s.repo.Create(ctx, hotel); err != nil {
		if errors.Is(err, hotelserrors.ErrDuplicateID) {
			return nil, apperrors.Conflict("Hotel already exists")
		}
		return nil, s.storeError("Failed to create hotel", err)
	}

	s.cfg.Log.Info("Hotel created",
		"id", hotel.ID,
		"name", hotel.Name,
		"location", hotel.Location,
		"rooms", len(hotel.Rooms),
	)
	s.invalidate(ctx, hotel.ID)
	return hotel, nil
}

// Update replaces every editable field of an existing hotel.
func (s *hotelService) Update(ctx context.Context, id string, in *model.HotelInput) (*model.Hotel, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}
	if err := s.prepare(in); err != nil {
		return nil, err
	}

	hotel := newHotel(id, in)
	if err := s.repo.Replace(ctx, hotel); err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Hotel", id)
		}
		return nil, s.storeError("Failed to update hotel", err)
	}

	s.cfg.Log.Info("Hotel updated", "id", id, "name", hotel.Name)
	s.invalidate(ctx, id)
	return hotel, nil
}

func (s *hotelService) prepare(in *model.HotelInput) error {
	sanitizer.NormalizeHotelInput(in)

	if err := s.validator.Validate(in); err != nil {
		var validationErrs validation.ValidationErrors
		if errors.As(err, &validationErrs) {
			s.cfg.Log.Warn("Hotel validation failed", "name", in.Name, "error", err)
			return apperrors.Validation("Invalid hotel", validationErrs.Details())
		}
		return apperrors.Internal("Failed to validate hotel", err)
	}
	return nil
}

func (s *hotelService) invalidate(ctx context.Context, hotelID string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.cfg.Log.Warn("Search cache invalidation failed after hotel write", "id", hotelID, "error", err)
	}
}

func (s *hotelService) storeError(message string, err error) error {
	s.cfg.Log.Error(message, "error", err)
	if errors.Is(err, hotelserrors.ErrStoreUnavailable) {
		return apperrors.Unavailable("Hotel store").WithCause(err)
	}
	return apperrors.Internal(message, err)
}

func newHotel(id string, in *model.HotelInput) *model.Hotel {
	rooms := in.Rooms
	if rooms == nil {
		rooms = make([]model.RoomClass, 0)
	}
	return &model.Hotel{
		ID:            id,
		Name:          in.Name,
		Location:      in.Location,
		ExactLocation: in.ExactLocation,
		Description:   in.Description,
		ContactPhone:  in.ContactPhone,
		BasePrice:     in.BasePrice,
		Rooms:         rooms,
		UpdatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
}
