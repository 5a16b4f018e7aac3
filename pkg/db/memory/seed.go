package memory

import (
	"time"

	"hotelbook/pkg/model"
)

const DemoHotelID = "mock-resort"

// Seed loads the demo catalog used when the service runs without a database.
func (s *Store) Seed() {
	s.PutHotel(&model.Hotel{
		ID:            DemoHotelID,
		Name:          "Mock Resort",
		Location:      "Bodrum",
		ExactLocation: "Bodrum Marina, Mugla",
		Description:   "Seaside demo property",
		BasePrice:     200,
		Rooms: []model.RoomClass{
			{Type: "Standard", Capacity: 2, Count: 5, Price: 200, Amenities: []string{"wifi"}},
		},
		UpdatedAt: time.Now().UTC(),
	})
}
