package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomGuardValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"hotel_id", "room_type", "version"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"hotel_id":   bson.M{"bsonType": "string"},
			"room_type":  bson.M{"bsonType": "string"},
			"version":    bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
