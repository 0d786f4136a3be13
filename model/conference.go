package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Conference field names used by the query layer. They must match the bson
// tags below.
const (
	ConfFieldName           = "name"
	ConfFieldCity           = "city"
	ConfFieldTopics         = "topics"
	ConfFieldMonth          = "month"
	ConfFieldMaxAttendees   = "max_attendees"
	ConfFieldSeatsAvailable = "seats_available"
	ConfFieldOrganizerId    = "organizer_id"
)

type Conference struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Description    string             `json:"description" bson:"description"`
	OrganizerId    string             `json:"organizer_id" bson:"organizer_id"`
	Topics         []string           `json:"topics" bson:"topics"`
	City           string             `json:"city" bson:"city"`
	StartDate      string             `json:"start_date" bson:"start_date"`
	EndDate        string             `json:"end_date" bson:"end_date"`
	Month          int                `json:"month" bson:"month"`
	MaxAttendees   int                `json:"max_attendees" bson:"max_attendees"`
	SeatsAvailable int                `json:"seats_available" bson:"seats_available"`
}

// WebsafeKey is the key form exchanged with clients and stored in profile
// attendance lists.
func (c Conference) WebsafeKey() string {
	return c.Id.Hex()
}
