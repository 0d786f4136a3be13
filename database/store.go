package database

import (
	"context"

	"conference-central/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comparison operators understood by both store implementations.
const (
	OpEq    = "="
	OpGt    = ">"
	OpGtEq  = ">="
	OpLt    = "<"
	OpLtEq  = "<="
	OpNotEq = "!="
)

// Filter is one (field, operator, value) predicate. Field names are the bson
// field names declared next to each model.
type Filter struct {
	Field string
	Op    string
	Value interface{}
}

// Query is a conjunction of filters plus an ordered list of sort fields
// (ascending). Parent scoping is expressed as an equality filter on the
// parent-reference field.
type Query struct {
	Filters []Filter
	Sort    []string
}

func (q Query) WithFilter(field, op string, value interface{}) Query {
	q.Filters = append(q.Filters, Filter{Field: field, Op: op, Value: value})
	return q
}

// Store is the narrow persistence surface the services depend on. Lookups
// return (nil, nil) when the record does not exist; translating that into a
// not-found failure is the caller's business.
//
// InTransaction runs fn so that every store call made with the context it
// receives is atomic across records; fn may be retried, so it must be safe
// to re-run from its initial reads.
type Store interface {
	GetConference(ctx context.Context, id primitive.ObjectID) (*model.Conference, error)
	PutConference(ctx context.Context, conf *model.Conference) error
	QueryConferences(ctx context.Context, q Query) ([]model.Conference, error)
	// GetConferencesByKeys resolves websafe keys in order; unresolvable keys
	// yield nil entries.
	GetConferencesByKeys(ctx context.Context, keys []string) ([]*model.Conference, error)

	GetProfile(ctx context.Context, userId string) (*model.Profile, error)
	PutProfile(ctx context.Context, prof *model.Profile) error

	GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error)
	PutSession(ctx context.Context, sess *model.Session) error
	QuerySessions(ctx context.Context, q Query) ([]model.Session, error)
	CountSessions(ctx context.Context, q Query) (int64, error)

	PutWishlistEntry(ctx context.Context, entry *model.WishlistEntry) error
	QueryWishlistEntries(ctx context.Context, q Query) ([]model.WishlistEntry, error)
	CountWishlistEntries(ctx context.Context, q Query) (int64, error)

	GetUser(ctx context.Context, login string) (*model.UserData, error)

	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
