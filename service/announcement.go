package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"conference-central/config"
	"conference-central/database"
	"conference-central/errors"
	"conference-central/model"
	"conference-central/tasks"
)

// RebuildNearSoldOutAnnouncement recomputes the nearly-sold-out banner from
// conference state: conferences with 1 to 5 seats left make the list; an
// empty list clears the cache slot. Safe to run redundantly or concurrently,
// last write wins.
func (s *Service) RebuildNearSoldOutAnnouncement(ctx context.Context) (string, error) {
	q := database.Query{Sort: []string{model.ConfFieldName}}.
		WithFilter(model.ConfFieldSeatsAvailable, database.OpGt, 0).
		WithFilter(model.ConfFieldSeatsAvailable, database.OpLtEq, 5)
	confs, err := s.store.QueryConferences(ctx, q)
	if err != nil {
		return "", err
	}

	if len(confs) == 0 {
		s.slots.Clear(config.ANNOUNCEMENT_CACHE_KEY)
		return "", nil
	}

	names := make([]string, len(confs))
	for i, conf := range confs {
		names[i] = conf.Name
	}
	announcement := fmt.Sprintf(config.ANNOUNCEMENT_TPL, strings.Join(names, ", "))
	s.slots.Set(config.ANNOUNCEMENT_CACHE_KEY, announcement)
	return announcement, nil
}

// RebuildFeaturedSpeaker recomputes the featured-speaker banner for the
// given speaker from their sessions.
func (s *Service) RebuildFeaturedSpeaker(ctx context.Context, speaker string) (string, error) {
	if speaker == "" {
		return "", errors.BadRequest("speaker field required")
	}

	q := database.Query{Sort: []string{model.SessionFieldName}}.
		WithFilter(model.SessionFieldSpeaker, database.OpEq, speaker)
	sessions, err := s.store.QuerySessions(ctx, q)
	if err != nil {
		return "", err
	}

	names := make([]string, len(sessions))
	for i, sess := range sessions {
		names[i] = sess.Name
	}
	announcement := fmt.Sprintf(config.FEATURED_SPEAKER_TPL, speaker, strings.Join(names, ", "))
	s.slots.Set(config.FEATURED_SPEAKER_CACHE_KEY, announcement)
	return announcement, nil
}

// Announcement returns the cached nearly-sold-out banner, "" when unset.
func (s *Service) Announcement() string {
	return s.slots.Get(config.ANNOUNCEMENT_CACHE_KEY)
}

// FeaturedSpeaker returns the cached featured-speaker banner, "" when unset.
func (s *Service) FeaturedSpeaker() string {
	return s.slots.Get(config.FEATURED_SPEAKER_CACHE_KEY)
}

// RegisterTaskHandlers wires the deferred-work handlers. The email handler
// only logs: delivery is an external collaborator.
func (s *Service) RegisterTaskHandlers(queue *tasks.Queue) {
	queue.Handle(TaskRebuildAnnouncement, func(ctx context.Context, payload map[string]string) error {
		_, err := s.RebuildNearSoldOutAnnouncement(ctx)
		return err
	})
	queue.Handle(TaskRebuildFeaturedSpeaker, func(ctx context.Context, payload map[string]string) error {
		_, err := s.RebuildFeaturedSpeaker(ctx, payload["speaker"])
		return err
	})
	queue.Handle(TaskSendConfirmationEmail, func(ctx context.Context, payload map[string]string) error {
		log.Printf("confirmation email for conference %v queued to %v", payload["conference_name"], payload["email"])
		return nil
	})
}
