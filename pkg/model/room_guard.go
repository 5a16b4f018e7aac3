package model

import "time"

// RoomGuard is the per-(hotel, room type) version document every booking
// transaction writes, so concurrent bookings of the same room conflict in the
// store instead of both passing the capacity check.
type RoomGuard struct {
	ID        string    `bson:"_id" json:"id"`
	HotelID   string    `bson:"hotel_id" json:"hotel_id"`
	RoomType  string    `bson:"room_type" json:"room_type"`
	Version   int64     `bson:"version" json:"version"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func RoomGuardID(hotelID, roomType string) string {
	return hotelID + "#" + roomType
}
