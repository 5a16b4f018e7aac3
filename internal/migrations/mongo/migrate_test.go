package mongo

import (
	"testing"

	mongodb "hotelbook/pkg/db/mongo"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections_CoverEveryStoreCollection(t *testing.T) {
	defs := Collections()

	for _, name := range []string{
		mongodb.HotelsCollection,
		mongodb.ReservationsCollection,
		mongodb.RoomGuardsCollection,
		mongodb.CapacitySnapshotsCollection,
	} {
		def, ok := defs[name]
		if assert.True(t, ok, name) {
			assert.Contains(t, def.Validator, "$jsonSchema", name)
		}
	}
}

func TestReservationIndexes_SupportAvailabilityQuery(t *testing.T) {
	keys := ReservationsIndexes[0].Keys.(bson.D)
	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, k.Key)
	}
	assert.Equal(t, []string{"hotel_id", "room_type", "status", "end_date"}, fields)
}

func TestReservationValidator_RequiresBookingFields(t *testing.T) {
	schema := Collections()[mongodb.ReservationsCollection].Validator["$jsonSchema"].(bson.M)
	assert.Subset(t, schema["required"], []string{"hotel_id", "room_type", "start_date", "end_date", "user_id", "status"})
}
