package service

import (
	"context"
	"time"

	"conference-central/database"
	"conference-central/errors"
	"conference-central/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DanglingSessionName marks a wishlist slot whose session no longer
// resolves; listings report it instead of failing.
const DanglingSessionName = "(session no longer exists)"

// AddSessionToWishlist stores a wishlist entry under the user's profile and
// returns the referenced session. The duplicate check spans every wishlist,
// not just the caller's own.
func (s *Service) AddSessionToWishlist(ctx context.Context, userId, sessionKey string) (*model.Session, error) {
	if sessionKey == "" {
		return nil, errors.BadRequest("session key field required")
	}

	dupQuery := database.Query{}.WithFilter(model.WishlistFieldSessionKey, database.OpEq, sessionKey)
	duplicates, err := s.store.CountWishlistEntries(ctx, dupQuery)
	if err != nil {
		return nil, err
	}
	if duplicates > 0 {
		return nil, errors.BadRequest("session %v is already in a wishlist", sessionKey)
	}

	prof, err := s.getOrCreateProfile(ctx, userId)
	if err != nil {
		return nil, err
	}

	entry := &model.WishlistEntry{
		Id:         primitive.NewObjectID(),
		ProfileId:  prof.Id,
		SessionKey: sessionKey,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.store.PutWishlistEntry(ctx, entry); err != nil {
		return nil, err
	}

	sessId, err := primitive.ObjectIDFromHex(sessionKey)
	if err != nil {
		return nil, errors.NotFound("no session found with key: %v", sessionKey)
	}
	sess, err := s.store.GetSession(ctx, sessId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errors.NotFound("no session found with key: %v", sessionKey)
	}
	return sess, nil
}

// ListWishlist resolves the user's wishlist in entry-creation order. A
// dangling reference resolves to a named placeholder rather than breaking
// the whole listing.
func (s *Service) ListWishlist(ctx context.Context, userId string) ([]model.Session, error) {
	q := database.Query{Sort: []string{model.WishlistFieldCreatedAt}}.
		WithFilter(model.WishlistFieldProfileId, database.OpEq, userId)
	entries, err := s.store.QueryWishlistEntries(ctx, q)
	if err != nil {
		return nil, err
	}

	sessions := make([]model.Session, 0, len(entries))
	for _, entry := range entries {
		sessions = append(sessions, s.resolveWishlistEntry(ctx, entry))
	}
	return sessions, nil
}

func (s *Service) resolveWishlistEntry(ctx context.Context, entry model.WishlistEntry) model.Session {
	sessId, err := primitive.ObjectIDFromHex(entry.SessionKey)
	if err != nil {
		return model.Session{Name: DanglingSessionName}
	}
	sess, err := s.store.GetSession(ctx, sessId)
	if err != nil || sess == nil {
		return model.Session{Id: sessId, Name: DanglingSessionName}
	}
	return *sess
}
