package service

import (
	"context"

	"conference-central/errors"
	"conference-central/model"
)

// getOrCreateProfile returns the user's profile, creating it on first
// access. The display name defaults to the login and the email is copied
// from the user record when one exists.
func (s *Service) getOrCreateProfile(ctx context.Context, userId string) (*model.Profile, error) {
	prof, err := s.store.GetProfile(ctx, userId)
	if err != nil {
		return nil, err
	}
	if prof != nil {
		return prof, nil
	}

	prof = &model.Profile{
		Id:                     userId,
		DisplayName:            userId,
		TeeShirtSize:           model.TeeShirtNotSpecified,
		ConferenceKeysToAttend: []string{},
	}
	user, err := s.store.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user != nil {
		prof.MainEmail = user.MainEmail
	}

	if err := s.store.PutProfile(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

func (s *Service) GetProfile(ctx context.Context, userId string) (*model.Profile, error) {
	return s.getOrCreateProfile(ctx, userId)
}

// SaveProfile updates the user-modifiable fields; empty inputs leave the
// stored values untouched.
func (s *Service) SaveProfile(ctx context.Context, userId, displayName, teeShirtSize string) (*model.Profile, error) {
	if teeShirtSize != "" && !model.IsValidTeeShirtSize(teeShirtSize) {
		return nil, errors.BadRequest("unknown tee shirt size %v", teeShirtSize)
	}

	prof, err := s.getOrCreateProfile(ctx, userId)
	if err != nil {
		return nil, err
	}

	if displayName != "" {
		prof.DisplayName = displayName
	}
	if teeShirtSize != "" {
		prof.TeeShirtSize = teeShirtSize
	}

	if err := s.store.PutProfile(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}
