package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserData backs the login handler only. The Login doubles as the user id
// that keys Profile records.
type UserData struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Login          string             `json:"login" bson:"login,omitempty"`
	MainEmail      string             `json:"main_email" bson:"main_email,omitempty"`
	HashedPassword string             `json:"password_hash" bson:"password_hash,omitempty"`
	Role           string             `json:"role" bson:"role,omitempty"`
}
