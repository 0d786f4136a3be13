package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Session field names used by the query layer.
const (
	SessionFieldName          = "name"
	SessionFieldSpeaker       = "speaker"
	SessionFieldTypeOfSession = "type_of_session"
	SessionFieldDate          = "date"
	SessionFieldStartTime     = "start_time"
	SessionFieldConferenceId  = "conference_id"
)

// Session is parented under a Conference via the explicit conference_id
// reference. Date is "2006-01-02" and StartTime "15:04:05", so string
// comparison in filters matches chronological order.
type Session struct {
	Id            primitive.ObjectID `json:"_id" bson:"_id"`
	ConferenceId  primitive.ObjectID `json:"conference_id" bson:"conference_id"`
	Name          string             `json:"name" bson:"name"`
	Highlights    string             `json:"highlights" bson:"highlights"`
	Speaker       string             `json:"speaker" bson:"speaker"`
	Duration      int                `json:"duration" bson:"duration"`
	TypeOfSession string             `json:"type_of_session" bson:"type_of_session"`
	Date          string             `json:"date" bson:"date"`
	StartTime     string             `json:"start_time" bson:"start_time"`
}

func (s Session) WebsafeKey() string {
	return s.Id.Hex()
}
