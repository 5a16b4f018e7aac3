// Package memory is an in-process inventory store for development and tests.
// It holds hotels and reservations in maps and serializes booking
// transactions per (hotel, room type).
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"hotelbook/pkg/model"
)

var (
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDuplicateID         = errors.New("duplicate id")
)

type Store struct {
	mu           sync.RWMutex
	hotels       map[string]*model.Hotel
	reservations map[string]*model.Reservation

	locksMu   sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		hotels:       make(map[string]*model.Hotel),
		reservations: make(map[string]*model.Reservation),
		roomLocks:    make(map[string]*sync.Mutex),
	}
}

func (s *Store) roomLock(hotelID, roomType string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	key := model.RoomGuardID(hotelID, roomType)
	l, ok := s.roomLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.roomLocks[key] = l
	}
	return l
}

// Txn buffers the writes of one room-scoped transaction. Nothing is visible
// to other readers until Commit.
type Txn struct {
	store   *Store
	pending []*model.Reservation
}

// RunInRoom runs fn while holding the lock of (hotelID, roomType). Buffered
// writes are applied only when fn returns nil and ctx is still live.
func (s *Store) RunInRoom(ctx context.Context, hotelID, roomType string, fn func(*Txn) error) error {
	l := s.roomLock(hotelID, roomType)

	acquired := make(chan struct{})
	go func() {
		l.Lock()
		close(acquired)
	}()
	select {
	case <-acquired:
	case <-ctx.Done():
		go func() {
			<-acquired
			l.Unlock()
		}()
		return ctx.Err()
	}
	defer l.Unlock()

	txn := &Txn{store: s}
	if err := fn(txn); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return txn.commit()
}

func (t *Txn) Hotel(id string) (*model.Hotel, error) {
	return t.store.GetHotel(id)
}

// Reservations returns the confirmed reservations of the room, including the
// ones written earlier in this transaction.
func (t *Txn) Reservations(hotelID, roomType string) []*model.Reservation {
	out := t.store.roomReservations(hotelID, roomType)
	for _, r := range t.pending {
		if r.HotelID == hotelID && r.RoomType == roomType && r.Status == model.StatusConfirmed {
			out = append(out, cloneReservation(r))
		}
	}
	return out
}

func (t *Txn) Insert(r *model.Reservation) {
	t.pending = append(t.pending, cloneReservation(r))
}

func (t *Txn) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, r := range t.pending {
		if _, exists := t.store.reservations[r.ID]; exists {
			return ErrDuplicateID
		}
	}
	for _, r := range t.pending {
		t.store.reservations[r.ID] = r
	}
	return nil
}

func (s *Store) roomReservations(hotelID, roomType string) []*model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Reservation
	for _, r := range s.reservations {
		if r.HotelID == hotelID && r.RoomType == roomType && r.Status == model.StatusConfirmed {
			out = append(out, cloneReservation(r))
		}
	}
	return out
}

func (s *Store) PutHotel(h *model.Hotel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels[h.ID] = cloneHotel(h)
}

func (s *Store) InsertHotel(h *model.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.hotels[h.ID]; exists {
		return ErrDuplicateID
	}
	s.hotels[h.ID] = cloneHotel(h)
	return nil
}

func (s *Store) ReplaceHotel(h *model.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.hotels[h.ID]; !exists {
		return ErrHotelNotFound
	}
	s.hotels[h.ID] = cloneHotel(h)
	return nil
}

func (s *Store) GetHotel(id string) (*model.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hotels[id]
	if !ok {
		return nil, ErrHotelNotFound
	}
	return cloneHotel(h), nil
}

// Hotels returns the hotels accepted by match, ordered by name.
func (s *Store) Hotels(match func(*model.Hotel) bool) []*model.Hotel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Hotel
	for _, h := range s.hotels {
		if match == nil || match(h) {
			out = append(out, cloneHotel(h))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (s *Store) GetReservation(id string) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return cloneReservation(r), nil
}

// Reservations returns the reservations accepted by match, unordered.
func (s *Store) Reservations(match func(*model.Reservation) bool) []*model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Reservation
	for _, r := range s.reservations {
		if match == nil || match(r) {
			out = append(out, cloneReservation(r))
		}
	}
	return out
}

func cloneHotel(h *model.Hotel) *model.Hotel {
	c := *h
	c.Rooms = make([]model.RoomClass, len(h.Rooms))
	for i, r := range h.Rooms {
		r.Amenities = append([]string(nil), r.Amenities...)
		c.Rooms[i] = r
	}
	return &c
}

func cloneReservation(r *model.Reservation) *model.Reservation {
	c := *r
	return &c
}
