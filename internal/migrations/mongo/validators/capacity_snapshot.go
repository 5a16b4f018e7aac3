package validators

import "go.mongodb.org/mongo-driver/bson"

var CapacitySnapshotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"window_start", "window_end", "capacity_percentage", "updated_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":                 bson.M{"bsonType": "string"},
			"hotel_name":          bson.M{"bsonType": "string"},
			"window_start":        bson.M{"bsonType": "date"},
			"window_end":          bson.M{"bsonType": "date"},
			"total_room_nights":   bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
			"booked_room_nights":  bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
			"utilization_percent": bson.M{"bsonType": []string{"double", "int", "long"}},
			"capacity_percentage": bson.M{"bsonType": []string{"double", "int", "long"}},
			"last_event_id":       bson.M{"bsonType": "string"},
			"updated_at":          bson.M{"bsonType": "date"},
		},
	},
}
