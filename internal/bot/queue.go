package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type job struct {
	id       string
	from     string
	body     string
	queuedAt time.Time
}

// Queue decouples the webhook ack from message processing. The handler
// enqueues and returns immediately; workers run the pipeline with their own
// timeout and report completion or failure in the logs.
type Queue struct {
	svc     *Service
	jobs    chan job
	workers int
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewQueue(svc *Service, workers, buffer int, timeout time.Duration) *Queue {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 16
	}
	return &Queue{
		svc:     svc,
		jobs:    make(chan job, buffer),
		workers: workers,
		timeout: timeout,
	}
}

func (q *Queue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
}

// Stop closes intake and waits for in-flight jobs to finish. Callers must
// stop the HTTP server first so nothing enqueues after close.
func (q *Queue) Stop() {
	close(q.jobs)
	q.wg.Wait()
}

// Enqueue accepts a message for processing. A full queue drops the message
// (loudly): the webhook is still acked and the transport will redeliver.
func (q *Queue) Enqueue(from, body string) bool {
	j := job{
		id:       uuid.NewString(),
		from:     from,
		body:     body,
		queuedAt: time.Now(),
	}
	select {
	case q.jobs <- j:
		log.Printf("[queue] job=%s enqueued from=%s", j.id, from)
		return true
	default:
		log.Printf("[queue] job=%s DROPPED, queue full (from=%s)", j.id, from)
		return false
	}
}

func (q *Queue) run() {
	defer q.wg.Done()
	for j := range q.jobs {
		// Jobs get their own context so a server shutdown does not cut
		// off a reply that is already being assembled.
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		err := q.svc.HandleIncoming(ctx, j.from, j.body)
		cancel()

		elapsed := time.Since(j.queuedAt).Round(time.Millisecond)
		if err != nil {
			log.Printf("[queue] job=%s failed after %s: %v", j.id, elapsed, err)
			continue
		}
		log.Printf("[queue] job=%s done in %s", j.id, elapsed)
	}
}
