package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotelbook/internal/bookings/availability"
	bookingserrors "hotelbook/internal/bookings/errors"
	"hotelbook/internal/bookings/repository"
	"hotelbook/internal/bookings/validator"
	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/model"
	"hotelbook/pkg/validation"

	"github.com/google/uuid"
)

const soldOutMessage = "No availability for these specific dates."

// postCommitTimeout bounds the best-effort work done after a booking commits.
const postCommitTimeout = 2 * time.Second

// CacheInvalidator drops derived search results after inventory changes.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Notifier hands a committed reservation to the notification channel without
// waiting for delivery.
type Notifier interface {
	Enqueue(ctx context.Context, reservation *model.Reservation) error
}

type BookingService interface {
	Book(ctx context.Context, req *model.BookingRequest, userID string) (*model.Reservation, error)
	GetByID(ctx context.Context, id, callerID string, isAdmin bool) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	ListByHotel(ctx context.Context, hotelID string) ([]*model.Reservation, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	cache     CacheInvalidator
	notifier  Notifier
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	cache CacheInvalidator,
	notifier Notifier,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		cache:     cache,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// Book reserves one unit of a room class for [startDate, endDate). The
// capacity check and the write commit atomically; cache invalidation and the
// confirmation event happen only after a successful commit and never fail
// the booking.
func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest, userID string) (*model.Reservation, error) {
	stay, err := s.validator.Validate(req, userID)
	if err != nil {
		var validationErrs validation.ValidationErrors
		if errors.As(err, &validationErrs) {
			s.cfg.Log.Warn("Booking validation failed", "user_id", userID, "error", err)
			return nil, apperrors.Validation("Invalid booking request", validationErrs.Details())
		}
		return nil, apperrors.Internal("Failed to validate booking", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.BookingTimeout)
	defer cancel()

	reservation := &model.Reservation{
		ID:         uuid.NewString(),
		HotelID:    stay.HotelID,
		RoomType:   stay.RoomType,
		StartDate:  stay.Range.Start,
		EndDate:    stay.Range.End,
		GuestCount: stay.GuestCount,
		TotalPrice: stay.TotalPrice,
		UserID:     userID,
		Status:     model.StatusConfirmed,
	}

	err = s.repo.ExecuteBookingTransaction(ctx, stay.HotelID, stay.RoomType, func(ctx context.Context, tx repository.Tx) error {
		hotel, err := tx.FindHotel(ctx, stay.HotelID)
		if err != nil {
			return err
		}
		room, ok := hotel.Room(stay.RoomType)
		if !ok {
			return fmt.Errorf("%w: %s", bookingserrors.ErrRoomTypeNotFound, stay.RoomType)
		}

		existing, err := tx.FindRoomReservations(ctx, stay.HotelID, stay.RoomType, stay.Range.Start)
		if err != nil {
			return err
		}
		if availability.RemainingCapacity(room.Count, stay.Range, toRanges(existing)) <= 0 {
			return bookingserrors.ErrSoldOut
		}

		reservation.HotelName = hotel.Name
		reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		return tx.CreateReservation(ctx, reservation)
	})
	if err != nil {
		return nil, s.translateBookingError(ctx, stay, err)
	}

	s.cfg.Log.Info("Booking confirmed",
		"id", reservation.ID,
		"hotel_id", reservation.HotelID,
		"room_type", reservation.RoomType,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"user_id", userID,
	)

	s.afterCommit(ctx, reservation)
	return reservation, nil
}

// afterCommit runs the post-commit side effects on a context detached from
// the request, since the booking is already durable.
func (s *bookingService) afterCommit(ctx context.Context, reservation *model.Reservation) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.cfg.Log.Warn("Search cache invalidation failed after booking", "id", reservation.ID, "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Enqueue(ctx, reservation); err != nil {
			s.cfg.Log.Warn("Booking notification dropped", "id", reservation.ID, "error", err)
		}
	}
}

func (s *bookingService) translateBookingError(ctx context.Context, stay *validator.Stay, err error) error {
	switch {
	case errors.Is(err, bookingserrors.ErrHotelNotFound):
		return apperrors.NotFoundWithID("Hotel", stay.HotelID)
	case errors.Is(err, bookingserrors.ErrRoomTypeNotFound):
		return apperrors.NotFoundWithID("Room type", stay.RoomType)
	case errors.Is(err, bookingserrors.ErrSoldOut):
		s.cfg.Log.Info("Booking rejected, sold out",
			"hotel_id", stay.HotelID,
			"room_type", stay.RoomType,
		)
		return apperrors.SoldOut(soldOutMessage)
	case errors.Is(err, bookingserrors.ErrStoreUnavailable),
		errors.Is(err, bookingserrors.ErrWriteConflict),
		errors.Is(err, context.DeadlineExceeded),
		ctx.Err() != nil:
		s.cfg.Log.Error("Inventory store unavailable during booking", "hotel_id", stay.HotelID, "error", err)
		return apperrors.Unavailable("Inventory store").WithCause(err)
	case apperrors.IsAppError(err):
		return err
	default:
		s.cfg.Log.Error("Failed to create booking", "hotel_id", stay.HotelID, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}
}

func (s *bookingService) GetByID(ctx context.Context, id, callerID string, isAdmin bool) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		return nil, s.readError("Failed to retrieve reservation", err)
	}

	if !isAdmin && reservation.UserID != callerID {
		return nil, apperrors.Forbidden("Reservation belongs to another user")
	}
	return reservation, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.Unauthorized("User identity is required")
	}

	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, s.readError("Failed to count reservations", errCount)
	}
	if errFind != nil {
		return nil, 0, s.readError("Failed to retrieve reservations", errFind)
	}

	return reservations, count, nil
}

func (s *bookingService) ListByHotel(ctx context.Context, hotelID string) ([]*model.Reservation, error) {
	if err := s.validator.ValidateHotelQuery(hotelID); err != nil {
		return nil, apperrors.InvalidInput("hotel_id query parameter is required")
	}

	reservations, err := s.repo.FindByHotel(ctx, hotelID)
	if err != nil {
		return nil, s.readError("Failed to retrieve hotel reservations", err)
	}
	return reservations, nil
}

func (s *bookingService) readError(message string, err error) error {
	s.cfg.Log.Error(message, "error", err)
	if errors.Is(err, bookingserrors.ErrStoreUnavailable) {
		return apperrors.Unavailable("Inventory store").WithCause(err)
	}
	return apperrors.Internal(message, err)
}

func toRanges(reservations []*model.Reservation) []availability.DateRange {
	ranges := make([]availability.DateRange, 0, len(reservations))
	for _, r := range reservations {
		if r.Status != "" && r.Status != model.StatusConfirmed {
			continue
		}
		ranges = append(ranges, availability.DateRange{Start: r.StartDate, End: r.EndDate})
	}
	return ranges
}
