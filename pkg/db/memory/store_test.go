package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotelbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservation(id string) *model.Reservation {
	return &model.Reservation{
		ID:       id,
		HotelID:  DemoHotelID,
		RoomType: "Standard",
		Status:   model.StatusConfirmed,
	}
}

func TestRunInRoom_CommitsOnSuccess(t *testing.T) {
	s := NewStore()
	s.Seed()

	err := s.RunInRoom(context.Background(), DemoHotelID, "Standard", func(txn *Txn) error {
		txn.Insert(reservation("r1"))
		assert.Len(t, txn.Reservations(DemoHotelID, "Standard"), 1, "pending writes are visible inside the transaction")
		return nil
	})
	require.NoError(t, err)

	_, err = s.GetReservation("r1")
	assert.NoError(t, err)
}

func TestRunInRoom_DiscardsOnError(t *testing.T) {
	s := NewStore()
	boom := errors.New("boom")

	err := s.RunInRoom(context.Background(), DemoHotelID, "Standard", func(txn *Txn) error {
		txn.Insert(reservation("r1"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.GetReservation("r1")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRunInRoom_SerializesSameRoom(t *testing.T) {
	s := NewStore()
	var mu sync.Mutex
	active, maxActive := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunInRoom(context.Background(), "h", "Standard", func(*Txn) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxActive)
}

func TestRunInRoom_ContextCancelledWhileWaiting(t *testing.T) {
	s := NewStore()
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = s.RunInRoom(context.Background(), "h", "Standard", func(*Txn) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.RunInRoom(ctx, "h", "Standard", func(*Txn) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}

func TestHotels_CopiesAreIsolated(t *testing.T) {
	s := NewStore()
	s.Seed()

	h, err := s.GetHotel(DemoHotelID)
	require.NoError(t, err)
	h.Rooms[0].Count = 99

	again, _ := s.GetHotel(DemoHotelID)
	assert.Equal(t, 5, again.Rooms[0].Count)
	assert.ErrorIs(t, s.InsertHotel(again), ErrDuplicateID)
	assert.ErrorIs(t, s.ReplaceHotel(&model.Hotel{ID: "missing"}), ErrHotelNotFound)
}
