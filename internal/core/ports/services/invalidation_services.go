package services

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/rodmarapp/rodmar_backend/internal/platform/cache"
	"github.com/rodmarapp/rodmar_backend/internal/platform/realtime"
)

// InvalidatorSvc is the single coordinator both mutation paths share: local
// writes call TransactionChanged/TripChanged directly, and the push-event
// listener translates remote events into the same calls via HandleEvent.
type InvalidatorSvc interface {
	// KeysFor computes the complete invalidation set for a change. Exposed
	// so the set is testable as data.
	KeysFor(info domain.ChangeInfo) []cache.Key

	// TransactionChanged invalidates every view derived from the partners a
	// transaction mutation touched and announces the change on the push
	// channel. Failures are logged, never returned.
	TransactionChanged(ctx context.Context, info domain.ChangeInfo)

	// TripChanged does the same for trip mutations.
	TripChanged(ctx context.Context, info domain.ChangeInfo)

	// HandleEvent mirrors a remote push event into local invalidation.
	HandleEvent(ctx context.Context, ev realtime.Event)
}
