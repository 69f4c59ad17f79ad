package realtime

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

func testHub() *Hub {
	return NewHub(nil, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Millisecond, 1)
}

func TestHubSubscribeReceivesDispatchedEvents(t *testing.T) {
	h := testHub()
	events, cancel := h.Subscribe()
	defer cancel()

	var handled []Event
	h.OnEvent(func(_ context.Context, ev Event) {
		handled = append(handled, ev)
	})

	ev := Event{Kind: KindTransactionUpdated, Refs: []domain.PartnerRef{{Tipo: domain.PartnerMina, ID: "7"}}}
	h.dispatch(context.Background(), ev)

	select {
	case got := <-events:
		assert.Equal(t, ev, got)
	default:
		t.Fatal("expected a buffered event")
	}
	assert.Equal(t, []Event{ev}, handled)
}

func TestHubCancelStopsDelivery(t *testing.T) {
	h := testHub()
	events, cancel := h.Subscribe()
	cancel()
	cancel() // second cancel is a no-op

	h.dispatch(context.Background(), Event{Kind: KindBalanceUpdated})
	assert.Zero(t, len(events))
}

func TestHubDispatchDuringCancelDoesNotPanic(t *testing.T) {
	h := testHub()
	ctx := context.Background()

	// Clients connect and disconnect while the pub/sub loop keeps
	// dispatching; a dropped connection must never take the loop down.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					h.dispatch(ctx, Event{Kind: KindBalanceUpdated})
				}
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		_, cancel := h.Subscribe()
		cancel()
	}
	close(stop)
	wg.Wait()
}
