package validators

import "go.mongodb.org/mongo-driver/bson"

var HotelValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "location", "base_price", "rooms"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":            bson.M{"bsonType": "string"},
			"name":           bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"location":       bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"exact_location": bson.M{"bsonType": "string"},
			"description":    bson.M{"bsonType": "string"},
			"contact_phone":  bson.M{"bsonType": "string"},
			"base_price":     bson.M{"bsonType": []string{"double", "int", "long"}},
			"rooms": bson.M{
				"bsonType": "array",
				"maxItems": 50,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"type", "capacity", "count", "price"},
					"properties": bson.M{
						"type":      bson.M{"bsonType": "string", "minLength": 1},
						"capacity":  bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
						"count":     bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
						"price":     bson.M{"bsonType": []string{"double", "int", "long"}},
						"amenities": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
					},
				},
			},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
