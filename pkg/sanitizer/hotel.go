package sanitizer

import (
	"math"

	"hotelbook/pkg/model"
)

func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

// NormalizeHotelInput normalizes an admin hotel payload in place. A contact
// phone that cannot be normalized is left as given so validation can reject
// it.
func NormalizeHotelInput(in *model.HotelInput) {
	in.Name = NormalizeName(in.Name)
	in.Location = NormalizeLocation(in.Location)
	in.ExactLocation = TrimAndNormalize(in.ExactLocation)
	in.Description = TrimAndNormalize(in.Description)
	if phone := NormalizePhone(in.ContactPhone); phone != "" {
		in.ContactPhone = phone
	} else {
		in.ContactPhone = TrimAndNormalize(in.ContactPhone)
	}
	in.BasePrice = RoundPrice(in.BasePrice)

	for i := range in.Rooms {
		room := &in.Rooms[i]
		room.Type = NormalizeRoomType(room.Type)
		room.Price = RoundPrice(room.Price)
		room.Amenities = NormalizeAmenities(room.Amenities)
	}
}
