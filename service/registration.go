package service

import (
	"context"

	"conference-central/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterForConference books one seat for the user. The profile append and
// the seat decrement commit as one unit inside the store's transactional
// scope, so two concurrent registrations can never both take the last seat.
func (s *Service) RegisterForConference(ctx context.Context, userId, confKey string) (bool, error) {
	confId, err := primitive.ObjectIDFromHex(confKey)
	if err != nil {
		return false, errors.NotFound("no conference found with key: %v", confKey)
	}

	txErr := s.store.InTransaction(ctx, func(ctx context.Context) error {
		prof, err := s.getOrCreateProfile(ctx, userId)
		if err != nil {
			return err
		}

		conf, err := s.store.GetConference(ctx, confId)
		if err != nil {
			return err
		}
		if conf == nil {
			return errors.NotFound("no conference found with key: %v", confKey)
		}

		if prof.IsAttending(confKey) {
			return errors.Conflict("you have already registered for this conference")
		}
		if conf.SeatsAvailable <= 0 {
			return errors.Conflict("there are no seats available")
		}

		prof.ConferenceKeysToAttend = append(prof.ConferenceKeysToAttend, confKey)
		conf.SeatsAvailable--

		if err := s.store.PutProfile(ctx, prof); err != nil {
			return err
		}
		return s.store.PutConference(ctx, conf)
	})
	if txErr != nil {
		return false, txErr
	}

	s.queue.Enqueue(TaskRebuildAnnouncement, nil)
	return true, nil
}

// UnregisterFromConference gives the seat back. Unregistering a user who
// never registered is a no-op returning false, not an error.
func (s *Service) UnregisterFromConference(ctx context.Context, userId, confKey string) (bool, error) {
	confId, err := primitive.ObjectIDFromHex(confKey)
	if err != nil {
		return false, errors.NotFound("no conference found with key: %v", confKey)
	}

	unregistered := false
	txErr := s.store.InTransaction(ctx, func(ctx context.Context) error {
		unregistered = false

		prof, err := s.getOrCreateProfile(ctx, userId)
		if err != nil {
			return err
		}

		conf, err := s.store.GetConference(ctx, confId)
		if err != nil {
			return err
		}
		if conf == nil {
			return errors.NotFound("no conference found with key: %v", confKey)
		}

		if !prof.IsAttending(confKey) {
			return nil
		}

		keys := prof.ConferenceKeysToAttend[:0]
		for _, key := range prof.ConferenceKeysToAttend {
			if key != confKey {
				keys = append(keys, key)
			}
		}
		prof.ConferenceKeysToAttend = keys
		// the cap guards the seat invariant when the owner lowered
		// maxAttendees while this user was registered
		if conf.SeatsAvailable < conf.MaxAttendees {
			conf.SeatsAvailable++
		}

		if err := s.store.PutProfile(ctx, prof); err != nil {
			return err
		}
		if err := s.store.PutConference(ctx, conf); err != nil {
			return err
		}
		unregistered = true
		return nil
	})
	if txErr != nil {
		return false, txErr
	}

	if unregistered {
		s.queue.Enqueue(TaskRebuildAnnouncement, nil)
	}
	return unregistered, nil
}
