package dispatch

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"AsmiDesk/entity"
)

// recordingSender captures sends per contact in delivery order.
type recordingSender struct {
	mu    sync.Mutex
	sends map[string][]string
	fail  bool
}

func (r *recordingSender) SendText(to, text string) entity.DispatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sends == nil {
		r.sends = make(map[string][]string)
	}
	r.sends[to] = append(r.sends[to], text)
	if r.fail {
		return entity.DispatchResult{Error: "gateway down"}
	}
	return entity.DispatchResult{Ok: true, StatusCode: 200}
}

func TestDispatcherPreservesPerContactOrder(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))

	const n = 50
	for i := 0; i < n; i++ {
		d.Enqueue("628111@c.us", fmt.Sprintf("msg-%d", i))
		d.Enqueue("628222@c.us", fmt.Sprintf("other-%d", i))
	}
	d.Wait()

	for _, contact := range []string{"628111@c.us", "628222@c.us"} {
		got := sender.sends[contact]
		if len(got) != n {
			t.Fatalf("%s: delivered %d, want %d", contact, len(got), n)
		}
	}
	for i, text := range sender.sends["628111@c.us"] {
		if want := fmt.Sprintf("msg-%d", i); text != want {
			t.Fatalf("out of order at %d: got %q, want %q", i, text, want)
		}
	}
}

func TestDispatcherContinuesAfterFailure(t *testing.T) {
	sender := &recordingSender{fail: true}
	d := NewDispatcher(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))

	d.Enqueue("628111@c.us", "first")
	d.Enqueue("628111@c.us", "second")
	d.Wait()

	// failed sends are dropped, not retried, and do not block the queue
	if got := sender.sends["628111@c.us"]; len(got) != 2 {
		t.Fatalf("attempted %d sends, want 2", len(got))
	}
}

func TestDispatcherReturnsCorrelationID(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	id := d.Enqueue("628111@c.us", "halo")
	if id == "" {
		t.Error("correlation id must not be empty")
	}
	d.Wait()
}
