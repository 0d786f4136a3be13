package service

import (
	"context"
	"sync"
	"testing"

	"conference-central/cache"
	"conference-central/database"
	"conference-central/model"

	"github.com/stretchr/testify/require"
)

type queuedTask struct {
	taskType string
	payload  map[string]string
}

// recordingQueue captures enqueued tasks instead of running them.
type recordingQueue struct {
	mu    sync.Mutex
	tasks []queuedTask
}

func (q *recordingQueue) Enqueue(taskType string, payload map[string]string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, queuedTask{taskType: taskType, payload: payload})
}

func (q *recordingQueue) ofType(taskType string) []queuedTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	matched := []queuedTask{}
	for _, t := range q.tasks {
		if t.taskType == taskType {
			matched = append(matched, t)
		}
	}
	return matched
}

type fixture struct {
	svc   *Service
	store *database.MemStore
	slots *cache.Slots
	queue *recordingQueue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := database.NewMemStore()
	slots := cache.NewSlots()
	queue := &recordingQueue{}
	return &fixture{
		svc:   New(store, slots, queue, DefaultConfig()),
		store: store,
		slots: slots,
		queue: queue,
	}
}

func (f *fixture) mustCreateConference(t *testing.T, organizer string, input ConferenceInput) *model.Conference {
	t.Helper()
	conf, err := f.svc.CreateConference(context.Background(), organizer, input)
	require.NoError(t, err)
	return conf
}

func (f *fixture) mustCreateSession(t *testing.T, organizer, confKey string, input SessionInput) *model.Session {
	t.Helper()
	sess, err := f.svc.CreateSession(context.Background(), organizer, confKey, input)
	require.NoError(t, err)
	return sess
}

func (f *fixture) conference(t *testing.T, conf *model.Conference) *model.Conference {
	t.Helper()
	stored, err := f.store.GetConference(context.Background(), conf.Id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	return stored
}
