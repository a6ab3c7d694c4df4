package dispatch

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"AsmiDesk/entity"
	"AsmiDesk/internal/lib/sl"
)

// Sender delivers one outbound message; implemented by the gateway client.
type Sender interface {
	SendText(to, text string) entity.DispatchResult
}

type job struct {
	id   string
	to   string
	text string
}

// Dispatcher decouples outbound delivery from the inbound request. Jobs for
// one contact are drained by a single goroutine in enqueue order, so sends
// within a chat follow persistence order; different contacts run in
// parallel. Delivery is best effort: failures are logged, never retried,
// and the already committed message is never re-persisted.
type Dispatcher struct {
	sender Sender
	log    *slog.Logger

	mu     sync.Mutex
	queues map[string][]job
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		log:    logger.With(sl.Module("dispatcher")),
		queues: make(map[string][]job),
	}
}

// Enqueue schedules one outbound send for a contact and returns the
// correlation id used in logs.
func (d *Dispatcher) Enqueue(to, text string) string {
	j := job{id: uuid.NewString(), to: to, text: text}

	d.mu.Lock()
	queue, running := d.queues[to]
	d.queues[to] = append(queue, j)
	if !running {
		d.wg.Add(1)
		go d.drain(to)
	}
	d.mu.Unlock()

	return j.id
}

// drain sends the contact's queued jobs in order until the queue empties.
func (d *Dispatcher) drain(to string) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		queue := d.queues[to]
		if len(queue) == 0 {
			delete(d.queues, to)
			d.mu.Unlock()
			return
		}
		j := queue[0]
		d.queues[to] = queue[1:]
		d.mu.Unlock()

		result := d.sender.SendText(j.to, j.text)
		if !result.Ok {
			d.log.With(
				slog.String("dispatch_id", j.id),
				slog.String("to", j.to),
				slog.String("error", result.Error),
			).Warn("dispatch failed")
			continue
		}
		d.log.With(
			slog.String("dispatch_id", j.id),
			slog.String("to", j.to),
		).Debug("dispatched")
	}
}

// Wait blocks until all queued sends are done. Used by tests and shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
