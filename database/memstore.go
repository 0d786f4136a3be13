package database

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"conference-central/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type txMarker struct{}

// MemStore is an in-memory Store used by tests and local runs without a
// MongoDB. A single mutex serializes transactions; a snapshot taken at
// transaction start restores state when the transactional fn fails, so
// failed registrations leave no partial mutation behind.
type MemStore struct {
	mu        sync.Mutex
	confs     map[string]model.Conference
	profiles  map[string]model.Profile
	sessions  map[string]model.Session
	wishlists []model.WishlistEntry
	users     map[string]model.UserData
}

func NewMemStore() *MemStore {
	return &MemStore{
		confs:     map[string]model.Conference{},
		profiles:  map[string]model.Profile{},
		sessions:  map[string]model.Session{},
		wishlists: []model.WishlistEntry{},
		users:     map[string]model.UserData{},
	}
}

func (m *MemStore) lock(ctx context.Context) func() {
	if ctx.Value(txMarker{}) != nil {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *MemStore) snapshot() *MemStore {
	snap := NewMemStore()
	for k, v := range m.confs {
		v.Topics = append([]string{}, v.Topics...)
		snap.confs[k] = v
	}
	for k, v := range m.profiles {
		v.ConferenceKeysToAttend = append([]string{}, v.ConferenceKeysToAttend...)
		snap.profiles[k] = v
	}
	for k, v := range m.sessions {
		snap.sessions[k] = v
	}
	snap.wishlists = append([]model.WishlistEntry{}, m.wishlists...)
	for k, v := range m.users {
		snap.users[k] = v
	}
	return snap
}

func (m *MemStore) restore(snap *MemStore) {
	m.confs = snap.confs
	m.profiles = snap.profiles
	m.sessions = snap.sessions
	m.wishlists = snap.wishlists
	m.users = snap.users
}

func (m *MemStore) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot()
	err := fn(context.WithValue(ctx, txMarker{}, true))
	if err != nil {
		m.restore(snap)
	}
	return err
}

func (m *MemStore) GetConference(ctx context.Context, id primitive.ObjectID) (*model.Conference, error) {
	defer m.lock(ctx)()
	conf, exist := m.confs[id.Hex()]
	if !exist {
		return nil, nil
	}
	conf.Topics = append([]string{}, conf.Topics...)
	return &conf, nil
}

func (m *MemStore) PutConference(ctx context.Context, conf *model.Conference) error {
	defer m.lock(ctx)()
	stored := *conf
	stored.Topics = append([]string{}, conf.Topics...)
	m.confs[conf.Id.Hex()] = stored
	return nil
}

func (m *MemStore) QueryConferences(ctx context.Context, q Query) ([]model.Conference, error) {
	defer m.lock(ctx)()
	matched := []model.Conference{}
	for _, conf := range m.confs {
		ok, err := matches(q.Filters, conferenceField(conf))
		if err != nil {
			return nil, err
		}
		if ok {
			conf.Topics = append([]string{}, conf.Topics...)
			matched = append(matched, conf)
		}
	}
	// map iteration order is random; make the unsorted case deterministic too
	sortBy(matched, append(append([]string{}, q.Sort...), "_id"), func(c model.Conference) func(string) (interface{}, bool) {
		return conferenceField(c)
	})
	return matched, nil
}

func (m *MemStore) GetConferencesByKeys(ctx context.Context, keys []string) ([]*model.Conference, error) {
	defer m.lock(ctx)()
	resolved := make([]*model.Conference, len(keys))
	for i, key := range keys {
		if conf, exist := m.confs[key]; exist {
			conf.Topics = append([]string{}, conf.Topics...)
			resolved[i] = &conf
		}
	}
	return resolved, nil
}

func (m *MemStore) GetProfile(ctx context.Context, userId string) (*model.Profile, error) {
	defer m.lock(ctx)()
	prof, exist := m.profiles[userId]
	if !exist {
		return nil, nil
	}
	prof.ConferenceKeysToAttend = append([]string{}, prof.ConferenceKeysToAttend...)
	return &prof, nil
}

func (m *MemStore) PutProfile(ctx context.Context, prof *model.Profile) error {
	defer m.lock(ctx)()
	stored := *prof
	stored.ConferenceKeysToAttend = append([]string{}, prof.ConferenceKeysToAttend...)
	m.profiles[prof.Id] = stored
	return nil
}

func (m *MemStore) GetSession(ctx context.Context, id primitive.ObjectID) (*model.Session, error) {
	defer m.lock(ctx)()
	sess, exist := m.sessions[id.Hex()]
	if !exist {
		return nil, nil
	}
	return &sess, nil
}

func (m *MemStore) PutSession(ctx context.Context, sess *model.Session) error {
	defer m.lock(ctx)()
	m.sessions[sess.Id.Hex()] = *sess
	return nil
}

func (m *MemStore) QuerySessions(ctx context.Context, q Query) ([]model.Session, error) {
	defer m.lock(ctx)()
	matched := []model.Session{}
	for _, sess := range m.sessions {
		ok, err := matches(q.Filters, sessionField(sess))
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, sess)
		}
	}
	sortBy(matched, append(append([]string{}, q.Sort...), "_id"), func(s model.Session) func(string) (interface{}, bool) {
		return sessionField(s)
	})
	return matched, nil
}

func (m *MemStore) CountSessions(ctx context.Context, q Query) (int64, error) {
	sessions, err := m.QuerySessions(ctx, q)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

func (m *MemStore) PutWishlistEntry(ctx context.Context, entry *model.WishlistEntry) error {
	defer m.lock(ctx)()
	m.wishlists = append(m.wishlists, *entry)
	return nil
}

func (m *MemStore) QueryWishlistEntries(ctx context.Context, q Query) ([]model.WishlistEntry, error) {
	defer m.lock(ctx)()
	matched := []model.WishlistEntry{}
	for _, entry := range m.wishlists {
		ok, err := matches(q.Filters, wishlistField(entry))
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, entry)
		}
	}
	sortBy(matched, q.Sort, func(e model.WishlistEntry) func(string) (interface{}, bool) {
		return wishlistField(e)
	})
	return matched, nil
}

func (m *MemStore) CountWishlistEntries(ctx context.Context, q Query) (int64, error) {
	entries, err := m.QueryWishlistEntries(ctx, q)
	if err != nil {
		return 0, err
	}
	return int64(len(entries)), nil
}

func (m *MemStore) GetUser(ctx context.Context, login string) (*model.UserData, error) {
	defer m.lock(ctx)()
	user, exist := m.users[login]
	if !exist {
		return nil, nil
	}
	return &user, nil
}

// PutUser exists for seeding test fixtures; the API never creates users.
func (m *MemStore) PutUser(ctx context.Context, user *model.UserData) error {
	defer m.lock(ctx)()
	m.users[user.Login] = *user
	return nil
}

func conferenceField(c model.Conference) func(string) (interface{}, bool) {
	return func(field string) (interface{}, bool) {
		switch field {
		case "_id":
			return c.Id.Hex(), true
		case model.ConfFieldName:
			return c.Name, true
		case model.ConfFieldCity:
			return c.City, true
		case model.ConfFieldTopics:
			return c.Topics, true
		case model.ConfFieldMonth:
			return c.Month, true
		case model.ConfFieldMaxAttendees:
			return c.MaxAttendees, true
		case model.ConfFieldSeatsAvailable:
			return c.SeatsAvailable, true
		case model.ConfFieldOrganizerId:
			return c.OrganizerId, true
		}
		return nil, false
	}
}

func sessionField(s model.Session) func(string) (interface{}, bool) {
	return func(field string) (interface{}, bool) {
		switch field {
		case "_id":
			return s.Id.Hex(), true
		case model.SessionFieldName:
			return s.Name, true
		case model.SessionFieldSpeaker:
			return s.Speaker, true
		case model.SessionFieldTypeOfSession:
			return s.TypeOfSession, true
		case model.SessionFieldDate:
			return s.Date, true
		case model.SessionFieldStartTime:
			return s.StartTime, true
		case model.SessionFieldConferenceId:
			return s.ConferenceId, true
		}
		return nil, false
	}
}

func wishlistField(e model.WishlistEntry) func(string) (interface{}, bool) {
	return func(field string) (interface{}, bool) {
		switch field {
		case "_id":
			return e.Id.Hex(), true
		case model.WishlistFieldProfileId:
			return e.ProfileId, true
		case model.WishlistFieldSessionKey:
			return e.SessionKey, true
		case model.WishlistFieldCreatedAt:
			return e.CreatedAt, true
		}
		return nil, false
	}
}

func matches(filters []Filter, fieldVal func(string) (interface{}, bool)) (bool, error) {
	for _, f := range filters {
		val, known := fieldVal(f.Field)
		if !known {
			return false, fmt.Errorf("unknown filter field %q", f.Field)
		}
		ok, err := evalFilter(val, f.Op, f.Value)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evalFilter(val interface{}, op string, want interface{}) (bool, error) {
	// repeated fields match on membership, like mongo array equality
	if members, isList := val.([]string); isList {
		contained := false
		for _, member := range members {
			if member == want {
				contained = true
				break
			}
		}
		switch op {
		case OpEq:
			return contained, nil
		case OpNotEq:
			return !contained, nil
		default:
			return false, fmt.Errorf("operator %q not supported on repeated field", op)
		}
	}

	cmp, err := compareValues(val, want)
	if err != nil {
		return false, err
	}
	switch op {
	case OpEq:
		return cmp == 0, nil
	case OpNotEq:
		return cmp != 0, nil
	case OpGt:
		return cmp > 0, nil
	case OpGtEq:
		return cmp >= 0, nil
	case OpLt:
		return cmp < 0, nil
	case OpLtEq:
		return cmp <= 0, nil
	}
	return false, fmt.Errorf("unknown filter operator %q", op)
}

func compareValues(a, b interface{}) (int, error) {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("cannot compare string field with %T value", b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		}
		return 0, nil
	case int:
		bv, ok := b.(int)
		if !ok {
			return 0, fmt.Errorf("cannot compare int field with %T value", b)
		}
		return av - bv, nil
	case primitive.ObjectID:
		bv, ok := b.(primitive.ObjectID)
		if !ok {
			return 0, fmt.Errorf("cannot compare id field with %T value", b)
		}
		switch {
		case av.Hex() < bv.Hex():
			return -1, nil
		case av.Hex() > bv.Hex():
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("cannot compare field of type %T", a)
}

func sortBy[T any](items []T, fields []string, fieldVal func(T) func(string) (interface{}, bool)) {
	if len(fields) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, field := range fields {
			vi, iKnown := fieldVal(items[i])(field)
			vj, jKnown := fieldVal(items[j])(field)
			if !iKnown || !jKnown {
				continue
			}
			cmp, err := compareValues(vi, vj)
			if err != nil || cmp == 0 {
				continue
			}
			return cmp < 0
		}
		return false
	})
}
