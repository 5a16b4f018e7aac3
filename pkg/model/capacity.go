package model

import "time"

// CapacitySnapshot is the derived utilization of a hotel over a rolling
// window. It is keyed by hotel id and overwritten on every recomputation.
type CapacitySnapshot struct {
	HotelID            string    `json:"hotelId" bson:"_id"`
	HotelName          string    `json:"hotelName" bson:"hotel_name"`
	WindowStart        time.Time `json:"windowStart" bson:"window_start"`
	WindowEnd          time.Time `json:"windowEnd" bson:"window_end"`
	TotalRoomNights    int       `json:"totalRoomNights" bson:"total_room_nights"`
	BookedRoomNights   int       `json:"bookedRoomNights" bson:"booked_room_nights"`
	UtilizationPercent float64   `json:"utilizationPercent" bson:"utilization_percent"`
	CapacityPercentage float64   `json:"capacityPercentage" bson:"capacity_percentage"`
	LastEventID        string    `json:"lastEventId,omitempty" bson:"last_event_id"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updated_at"`
}
