package tasks

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDeliversPayload(t *testing.T) {
	queue := NewQueue()

	var mu sync.Mutex
	received := []map[string]string{}
	queue.Handle("greet", func(ctx context.Context, payload map[string]string) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, payload)
		return nil
	})
	queue.Start()
	defer queue.Stop()

	queue.Enqueue("greet", map[string]string{"name": "alice"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "alice", received[0]["name"])
}

func TestQueueRetriesFailedTask(t *testing.T) {
	queue := NewQueue()

	var mu sync.Mutex
	attempts := 0
	queue.Handle("flaky", func(ctx context.Context, payload map[string]string) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 2 {
			return fmt.Errorf("transient failure")
		}
		return nil
	})
	queue.Start()
	defer queue.Stop()

	queue.Enqueue("flaky", nil)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestQueueGivesUpAfterMaxAttempts(t *testing.T) {
	queue := NewQueue()

	var mu sync.Mutex
	attempts := 0
	queue.Handle("doomed", func(ctx context.Context, payload map[string]string) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		return fmt.Errorf("permanent failure")
	})
	queue.Start()
	defer queue.Stop()

	queue.Enqueue("doomed", nil)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts == DefaultMaxAttempts
	}, 2*time.Second, 10*time.Millisecond)

	// no further deliveries
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, DefaultMaxAttempts, attempts)
}

func TestQueueDropsUnknownTaskType(t *testing.T) {
	queue := NewQueue()
	queue.Start()
	defer queue.Stop()

	// must not panic or wedge the worker
	queue.Enqueue("nobody-handles-this", nil)

	delivered := make(chan struct{})
	queue.Handle("known", func(ctx context.Context, payload map[string]string) error {
		close(delivered)
		return nil
	})
	queue.Enqueue("known", nil)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped processing after unknown task type")
	}
}
