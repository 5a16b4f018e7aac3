package dynamo

import "strings"

const (
	hotelPrefix       = "HOTEL#"
	reservationPrefix = "RESERVATION#"
	userPrefix        = "USER#"

	SKInfo = "INFO"

	HotelsPartition = "HOTELS"
)

func HotelPK(hotelID string) string {
	return hotelPrefix + hotelID
}

func ReservationPK(id string) string {
	return reservationPrefix + id
}

func UserPK(userID string) string {
	return userPrefix + userID
}

func GuardSK(roomType string) string {
	return "GUARD#" + roomType
}

// RoomReservationsPrefix is the sort key prefix of every reservation of one
// room class under its hotel partition.
func RoomReservationsPrefix(roomType string) string {
	return "RES#" + roomType + "#"
}

// AllReservationsPrefix matches every reservation under a hotel partition.
const AllReservationsPrefix = "RES#"

func ReservationSK(roomType, startDate, id string) string {
	return RoomReservationsPrefix(roomType) + startDate + "#" + id
}

// HotelSortKey orders hotels by name in the HOTELS partition of GSI1.
func HotelSortKey(name, id string) string {
	return strings.ToLower(name) + "#" + id
}
