package validators

import "go.mongodb.org/mongo-driver/bson"

var ProfileValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"handle",
			"full_name",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"handle": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 60,
				"pattern":   "^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$",
			},

			"full_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"headline": bson.M{
				"bsonType":  "string",
				"maxLength": 140,
			},

			"summary": bson.M{
				"bsonType":  "string",
				"maxLength": 4000,
			},

			"skills": bson.M{
				"bsonType": "array",
				"maxItems": 50,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"links": bson.M{
				"bsonType": "array",
				"maxItems": 10,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"label", "url"},
					"properties": bson.M{
						"label": bson.M{"bsonType": "string"},
						"url":   bson.M{"bsonType": "string"},
					},
				},
			},

			"resume": bson.M{
				"bsonType": "object",
			},

			"attachments": bson.M{
				"bsonType": "array",
				"maxItems": 20,
				"items": bson.M{
					"bsonType": "object",
				},
			},

			"is_default": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
