package validators

import "go.mongodb.org/mongo-driver/bson"

var VolunteerValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"first_name",
			"last_name",
			"email",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 80,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 80,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"phone": bson.M{
				"bsonType": "string",
			},

			"preferences": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"available_days": bson.M{
						"bsonType": "array",
						"items": bson.M{
							"bsonType": "string",
						},
					},
					"categories": bson.M{
						"bsonType": "array",
						"items": bson.M{
							"bsonType": "string",
						},
					},
					"time_slots": bson.M{
						"bsonType": "array",
						"items": bson.M{
							"bsonType": "string",
							"enum": []string{
								"morning",
								"afternoon",
								"evening",
								"night",
							},
						},
					},
					"durations": bson.M{
						"bsonType": "array",
						"items": bson.M{
							"bsonType": "string",
							"enum": []string{
								"short",
								"medium",
								"long",
							},
						},
					},
					"has_car": bson.M{
						"bsonType": "bool",
					},
					"pre_festival": bson.M{
						"bsonType": "bool",
					},
					"skills": bson.M{
						"bsonType": "array",
						"items": bson.M{
							"bsonType": "string",
						},
					},
				},
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
