package database

import (
	"context"
	"fmt"

	"conference-central/config"
	"conference-central/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoOps = map[string]string{
	OpEq:    "$eq",
	OpGt:    "$gt",
	OpGtEq:  "$gte",
	OpLt:    "$lt",
	OpLtEq:  "$lte",
	OpNotEq: "$ne",
}

// MongoStore implements Store on a MongoDB database. The transactional scope
// maps to a driver session transaction, so registration updates spanning a
// profile and a conference commit or abort as one unit.
type MongoStore struct {
	client      *mongo.Client
	conferences *mongo.Collection
	profiles    *mongo.Collection
	sessions    *mongo.Collection
	wishlists   *mongo.Collection
	users       *mongo.Collection
}

func DBInit(ctx context.Context) (*MongoStore, error) {
	connString, err := config.GetSecret("MONGODB_CONNSTRING")
	if err != nil {
		return nil, fmt.Errorf("cannot find connection string for DB in the environment: %v", err)
	}

	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %v", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db is not available: %v", err)
	}

	db := client.Database(config.DB_NAME)
	return &MongoStore{
		client:      client,
		conferences: db.Collection("conferences"),
		profiles:    db.Collection("profiles"),
		sessions:    db.Collection("sessions"),
		wishlists:   db.Collection("wishlists"),
		users:       db.Collection("users"),
	}, nil
}

func filterDoc(q Query) (bson.M, error) {
	clauses := make([]bson.M, 0, len(q.Filters))
	for _, f := range q.Filters {
		op, known := mongoOps[f.Op]
		if !known {
			return nil, fmt.Errorf("unknown filter operator %q", f.Op)
		}
		clauses = append(clauses, bson.M{f.Field: bson.M{op: f.Value}})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}, nil
	case 1:
		return clauses[0], nil
	default:
		return bson.M{"$and": clauses}, nil
	}
}

func findOptions(q Query) *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		sortDoc := bson.D{}
		for _, field := range q.Sort {
			sortDoc = append(sortDoc, bson.E{Key: field, Value: 1})
		}
		opts.SetSort(sortDoc)
	}
	return opts
}

func getOne[T any](ctx context.Context, coll *mongo.Collection, key interface{}) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading from database: %v", err)
	}
	return &doc, nil
}

func putOne(ctx context.Context, coll *mongo.Collection, key interface{}, doc interface{}) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("server side problem occured while writing to database: %v", err)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, q Query) ([]T, error) {
	filter, err := filterDoc(q)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, filter, findOptions(q))
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading from database: %v", err)
	}

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("server side problem occured while reading from database: %v", err)
	}
	return docs, nil
}

func countAll(ctx context.Context, coll *mongo.Collection, q Query) (int64, error) {
	filter, err := filterDoc(q)
	if err != nil {
		return 0, err
	}

	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("server side problem occured while reading from database: %v", err)
	}
	return count, nil
}

func (m *MongoStore) GetConference(ctx context.Context, id primitive.ObjectID) (*model.Conference, error) {
	return getOne[model.Conference](ctx, m.conferences, id)
}

func (m *MongoStore) PutConference(ctx context.Context, conf *model.Conference) error {
	return putOne(ctx, m.conferences, conf.Id, conf)
}

func (m *MongoStore) QueryConferences(ctx context.Context, q Query) ([]model.Conference, error) {
	return findAll[model.Conference](ctx, m.conferences, q)
}

func (m *MongoStore) GetConferencesByKeys(ctx context.Context, keys []string) ([]*model.Conference, error) {
	resolved := make([]*model.Conference, len(keys))
	ids := []primitive.ObjectID{}
	for _, key := range keys {
		if id, err := primitive.ObjectIDFromHex(key); err == nil {
			ids = append(ids, id)
		}
	}

	cur, err := m.conferences.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading from database: %v", err)
	}
	found := []model.Conference{}
	if err := cur.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("server side problem occured while reading from database: %v", err)
	}

	byKey := make(map[string]*model.Conference, len(found))
	for i := range found {
		byKey[found[i].WebsafeKey()] = &found[i]
	}
	for i, key := range keys {
		resolved[i] = byKey[key]
	}
	return resolved, nil
}

func (m *MongoStore) GetProfile(ctx context.Context, userId string) (*model.Profile, error) {
	return getOne[model.Profile](ctx, m.profiles, userId)
}

func (m *MongoStore) PutProfile(ctx context.Context, prof *model.Profile) error {
	return putOne(ctx, m.profiles, prof.Id, prof)
}

func (m *MongoStore) GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error) {
	return getOne[model.Session](ctx, m.sessions, id)
}

func (m *MongoStore) PutSession(ctx context.Context, sess *model.Session) error {
	return putOne(ctx, m.sessions, sess.Id, sess)
}

func (m *MongoStore) QuerySessions(ctx context.Context, q Query) ([]model.Session, error) {
	return findAll[model.Session](ctx, m.sessions, q)
}

func (m *MongoStore) CountSessions(ctx context.Context, q Query) (int64, error) {
	return countAll(ctx, m.sessions, q)
}

func (m *MongoStore) PutWishlistEntry(ctx context.Context, entry *model.WishlistEntry) error {
	return putOne(ctx, m.wishlists, entry.Id, entry)
}

func (m *MongoStore) QueryWishlistEntries(ctx context.Context, q Query) ([]model.WishlistEntry, error) {
	return findAll[model.WishlistEntry](ctx, m.wishlists, q)
}

func (m *MongoStore) CountWishlistEntries(ctx context.Context, q Query) (int64, error) {
	return countAll(ctx, m.wishlists, q)
}

func (m *MongoStore) GetUser(ctx context.Context, login string) (*model.UserData, error) {
	var user model.UserData
	err := m.users.FindOne(ctx, bson.D{primitive.E{Key: "login", Value: login}}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading user data from database: %v", err)
	}
	return &user, nil
}

func (m *MongoStore) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("cannot start db session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
