package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hotelbook/internal/bookings/availability"
	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/internal/notifications/repository"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
)

// ErrUnknownHotel marks an event for a hotel the catalog does not hold.
// Retrying it cannot succeed.
var ErrUnknownHotel = errors.New("event references an unknown hotel")

type HotelReader interface {
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
}

type ReservationReader interface {
	FindConfirmedInWindow(ctx context.Context, hotelID string, from, to time.Time) ([]*model.Reservation, error)
}

// CapacityService recomputes hotel utilization from the store whenever a
// booking event arrives. The result depends only on the store, so duplicate
// and out-of-order events converge on the same snapshot.
type CapacityService struct {
	hotels       HotelReader
	reservations ReservationReader
	snapshots    repository.SnapshotRepository
	windowDays   int
	now          func() time.Time
	log          *logger.Logger
}

func NewCapacityService(
	hotels HotelReader,
	reservations ReservationReader,
	snapshots repository.SnapshotRepository,
	windowDays int,
	log *logger.Logger,
) *CapacityService {
	return &CapacityService{
		hotels:       hotels,
		reservations: reservations,
		snapshots:    snapshots,
		windowDays:   windowDays,
		now:          time.Now,
		log:          log,
	}
}

// HandleBookingConfirmed notifies the guest and refreshes the hotel snapshot.
func (s *CapacityService) HandleBookingConfirmed(ctx context.Context, event model.BookingEvent) error {
	s.log.Info("Booking confirmation sent",
		"event_id", event.EventID,
		"reservation_id", event.ReservationID,
		"user_id", event.UserID,
		"hotel", event.HotelName,
		"start_date", event.StartDate.Format(model.DateLayout),
		"end_date", event.EndDate.Format(model.DateLayout),
	)

	snapshot, err := s.Recompute(ctx, event.HotelID)
	if err != nil {
		return err
	}
	snapshot.LastEventID = event.EventID

	if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
		return err
	}

	s.log.Info("Capacity snapshot updated",
		"hotel_id", snapshot.HotelID,
		"booked_room_nights", snapshot.BookedRoomNights,
		"total_room_nights", snapshot.TotalRoomNights,
		"capacity_percentage", snapshot.CapacityPercentage,
	)
	return nil
}

// Recompute measures the hotel's room-night utilization over the window
// starting today.
func (s *CapacityService) Recompute(ctx context.Context, hotelID string) (*model.CapacitySnapshot, error) {
	hotel, err := s.hotels.FindByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownHotel, hotelID)
		}
		return nil, fmt.Errorf("failed to load hotel %s: %w", hotelID, err)
	}

	window := availability.DateRange{Start: availability.Day(s.now())}
	window.End = window.Start.AddDate(0, 0, s.windowDays)

	reservations, err := s.reservations.FindConfirmedInWindow(ctx, hotelID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations of %s: %w", hotelID, err)
	}

	booked := 0
	for _, r := range reservations {
		booked += availability.Intersection(availability.DateRange{Start: r.StartDate, End: r.EndDate}, window).Nights()
	}
	total := hotel.TotalUnits() * window.Nights()

	utilization := 100.0
	if total > 0 {
		utilization = percent(float64(booked) / float64(total) * 100)
	}

	return &model.CapacitySnapshot{
		HotelID:            hotel.ID,
		HotelName:          hotel.Name,
		WindowStart:        window.Start,
		WindowEnd:          window.End,
		TotalRoomNights:    total,
		BookedRoomNights:   booked,
		UtilizationPercent: utilization,
		CapacityPercentage: percent(100 - utilization),
		UpdatedAt:          s.now().UTC().Truncate(time.Millisecond),
	}, nil
}

func percent(v float64) float64 {
	return math.Max(0, math.Round(v*100)/100)
}
