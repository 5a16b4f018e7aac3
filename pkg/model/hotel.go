package model

import "time"

type RoomClass struct {
	Type      string   `json:"type" bson:"type" validate:"required,min=1,max=50,excludes=#"`
	Capacity  int      `json:"capacity" bson:"capacity" validate:"required,min=1,max=50"`
	Count     int      `json:"count" bson:"count" validate:"min=0,max=10000"`
	Price     float64  `json:"price" bson:"price" validate:"required,gt=0"`
	Amenities []string `json:"amenities" bson:"amenities" validate:"omitempty,max=50,dive,required,max=50"`
}

type Hotel struct {
	ID            string      `json:"id" bson:"_id" validate:"omitempty,max=64"`
	Name          string      `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Location      string      `json:"location" bson:"location" validate:"required,min=2,max=100"`
	ExactLocation string      `json:"exactLocation,omitempty" bson:"exact_location" validate:"omitempty,max=200"`
	Description   string      `json:"description,omitempty" bson:"description" validate:"omitempty,max=2000"`
	ContactPhone  string      `json:"contactPhone,omitempty" bson:"contact_phone" validate:"omitempty,e164"`
	BasePrice     float64     `json:"basePrice" bson:"base_price" validate:"required,gt=0"`
	Rooms         []RoomClass `json:"rooms" bson:"rooms" validate:"omitempty,max=50,room_types_unique,dive"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updated_at"`
}

// Room returns the room class with the given type label.
func (h *Hotel) Room(roomType string) (RoomClass, bool) {
	for _, r := range h.Rooms {
		if r.Type == roomType {
			return r, true
		}
	}
	return RoomClass{}, false
}

// TotalUnits is the number of physical rooms across all room classes.
func (h *Hotel) TotalUnits() int {
	total := 0
	for _, r := range h.Rooms {
		total += r.Count
	}
	return total
}

// HotelInput is the admin payload for creating or replacing a hotel.
type HotelInput struct {
	Name          string      `json:"name" validate:"required,min=2,max=100"`
	Location      string      `json:"location" validate:"required,min=2,max=100"`
	ExactLocation string      `json:"exactLocation,omitempty" validate:"omitempty,max=200"`
	Description   string      `json:"description,omitempty" validate:"omitempty,max=2000"`
	ContactPhone  string      `json:"contactPhone,omitempty" validate:"omitempty,e164"`
	BasePrice     float64     `json:"basePrice" validate:"required,gt=0"`
	Rooms         []RoomClass `json:"rooms" validate:"omitempty,max=50,room_types_unique,dive"`
}
