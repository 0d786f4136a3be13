// Package service holds the conference-central core: the seat ledger, the
// query engine, wishlists and the announcement builders. Handlers stay thin
// and call into here; persistence goes through database.Store.
package service

import (
	"conference-central/cache"
	"conference-central/database"
)

// Task types understood by the deferred-work queue.
const (
	TaskRebuildAnnouncement    = "rebuild_announcement"
	TaskRebuildFeaturedSpeaker = "rebuild_featured_speaker"
	TaskSendConfirmationEmail  = "send_confirmation_email"
)

// Enqueuer is the deferred-work contract: at-least-once delivery, no
// ordering guarantee.
type Enqueuer interface {
	Enqueue(taskType string, payload map[string]string)
}

type Config struct {
	// EmptyQueryIsError makes the named session queries surface zero matches
	// as a not-found failure instead of an empty list.
	EmptyQueryIsError bool
}

func DefaultConfig() Config {
	return Config{EmptyQueryIsError: true}
}

type Service struct {
	store database.Store
	slots *cache.Slots
	queue Enqueuer
	cfg   Config
}

func New(store database.Store, slots *cache.Slots, queue Enqueuer, cfg Config) *Service {
	return &Service{store: store, slots: slots, queue: queue, cfg: cfg}
}
