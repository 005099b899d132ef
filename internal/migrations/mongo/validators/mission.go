package validators

import "go.mongodb.org/mongo-driver/bson"

var MissionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"category",
			"type",
			"max_volunteers",
			"volunteers",
			"status",
			"version",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"category": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 60,
			},

			"location": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"scheduled",
					"ongoing",
				},
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"max_volunteers": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  500,
			},

			"volunteers": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"responsibles": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"pending_responsibles": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"is_urgent": bson.M{
				"bsonType": "bool",
			},

			"is_recurrent": bson.M{
				"bsonType": "bool",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"draft",
					"published",
					"full",
					"cancelled",
					"completed",
				},
			},

			"version": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"created_by": bson.M{
				"bsonType": "string",
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
