package validators

import "go.mongodb.org/mongo-driver/bson"

// AvailabilityValidator is deliberately loose. Availability documents are
// stored as written and normalized on read, so only the key field is enforced.
var AvailabilityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"profile_id",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"profile_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"timezone": bson.M{
				"bsonType": "string",
			},

			"weekly": bson.M{
				"bsonType": "object",
			},

			"rules": bson.M{
				"bsonType": "object",
			},

			"exceptions": bson.M{
				"bsonType": "array",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
