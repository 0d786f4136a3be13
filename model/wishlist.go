package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	WishlistFieldProfileId  = "profile_id"
	WishlistFieldSessionKey = "session_key"
	WishlistFieldCreatedAt  = "created_at"
)

// WishlistEntry is parented under a Profile and references a Session by its
// websafe key. CreatedAt preserves listing order.
type WishlistEntry struct {
	Id         primitive.ObjectID `json:"_id" bson:"_id"`
	ProfileId  string             `json:"profile_id" bson:"profile_id"`
	SessionKey string             `json:"session_key" bson:"session_key"`
	CreatedAt  string             `json:"created_at" bson:"created_at"`
}
