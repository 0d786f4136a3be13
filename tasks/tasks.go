package tasks

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

const DefaultBuffer = 64
const DefaultMaxAttempts = 3

// Handler processes one task payload. Handlers must be idempotent: delivery
// is at least once and carries no ordering guarantee.
type Handler func(ctx context.Context, payload map[string]string) error

type task struct {
	id       string
	taskType string
	payload  map[string]string
	attempts int
}

// Queue is an in-process deferred-work queue. Failed tasks are requeued up
// to maxAttempts; a full queue drops work, which callers must tolerate by
// keeping every task a recomputable-from-source operation.
type Queue struct {
	mu          sync.RWMutex
	handlers    map[string]Handler
	pending     chan task
	maxAttempts int
	done        chan struct{}
	wg          sync.WaitGroup
}

func NewQueue() *Queue {
	return &Queue{
		handlers:    make(map[string]Handler),
		pending:     make(chan task, DefaultBuffer),
		maxAttempts: DefaultMaxAttempts,
		done:        make(chan struct{}),
	}
}

// Handle registers the handler for a task type. Registration happens at
// startup, before Start.
func (q *Queue) Handle(taskType string, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[taskType] = handler
}

func (q *Queue) Enqueue(taskType string, payload map[string]string) {
	q.push(task{id: uuid.NewString(), taskType: taskType, payload: payload})
}

func (q *Queue) push(t task) {
	select {
	case q.pending <- t:
	default:
		log.Printf("task queue full, dropping task %v of type %v", t.id, t.taskType)
	}
}

func (q *Queue) Start() {
	q.wg.Add(1)
	go q.work()
}

// Stop waits for the worker to exit; tasks still pending stay undelivered,
// which the at-least-once contract permits for derived work.
func (q *Queue) Stop() {
	close(q.done)
	q.wg.Wait()
}

func (q *Queue) work() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case t := <-q.pending:
			q.run(t)
		}
	}
}

func (q *Queue) run(t task) {
	q.mu.RLock()
	handler, known := q.handlers[t.taskType]
	q.mu.RUnlock()
	if !known {
		log.Printf("no handler registered for task type %v, dropping task %v", t.taskType, t.id)
		return
	}

	err := handler(context.Background(), t.payload)
	if err == nil {
		return
	}

	t.attempts++
	if t.attempts >= q.maxAttempts {
		log.Printf("task %v of type %v failed after %v attempts: %v", t.id, t.taskType, t.attempts, err)
		return
	}
	log.Printf("task %v of type %v failed, retrying: %v", t.id, t.taskType, err)
	q.push(t)
}
