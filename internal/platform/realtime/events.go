package realtime

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

// EventKind tags the decoded push event. Wire names are parsed exactly once,
// here; everything downstream dispatches on the tag.
type EventKind string

const (
	// KindTransactionUpdated signals that a transaction was created, updated
	// or deleted. Refs carries every partner touched before and after.
	KindTransactionUpdated EventKind = "transaction-updated"
	// KindBalanceUpdated signals that one partner's balance changed.
	KindBalanceUpdated EventKind = "balance-updated"
	// KindBalanceGlobal signals that the aggregated balance map for a whole
	// partner type is stale. On the wire the name embeds the type:
	// "balanceGlobalActualizado:<tipo>".
	KindBalanceGlobal EventKind = "balanceGlobalActualizado"
)

const balanceGlobalPrefix = "balanceGlobalActualizado:"

// Event is the decoded form of a push-channel message.
type Event struct {
	Kind EventKind           `json:"kind"`
	Tipo domain.PartnerType  `json:"tipo,omitempty"` // set for KindBalanceGlobal
	Refs []domain.PartnerRef `json:"refs,omitempty"` // set for the other kinds
}

// envelope is the wire shape: a name (possibly dynamic) plus payload fields.
type envelope struct {
	Name string              `json:"name"`
	Refs []domain.PartnerRef `json:"refs,omitempty"`
}

// Encode renders the event to its wire form.
func Encode(ev Event) ([]byte, error) {
	env := envelope{Refs: ev.Refs}
	switch ev.Kind {
	case KindTransactionUpdated, KindBalanceUpdated:
		env.Name = string(ev.Kind)
	case KindBalanceGlobal:
		if !ev.Tipo.IsValid() {
			return nil, fmt.Errorf("encode event: invalid partner type %q", ev.Tipo)
		}
		env.Name = balanceGlobalPrefix + string(ev.Tipo)
	default:
		return nil, fmt.Errorf("encode event: unknown kind %q", ev.Kind)
	}
	return json.Marshal(env)
}

// Decode parses a wire message into a typed Event. Dynamic names embedding a
// partner type are resolved here so no other code inspects event names.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}

	switch {
	case env.Name == string(KindTransactionUpdated):
		return Event{Kind: KindTransactionUpdated, Refs: env.Refs}, nil
	case env.Name == string(KindBalanceUpdated):
		return Event{Kind: KindBalanceUpdated, Refs: env.Refs}, nil
	case strings.HasPrefix(env.Name, balanceGlobalPrefix):
		tipo := domain.PartnerType(strings.TrimPrefix(env.Name, balanceGlobalPrefix))
		if !tipo.IsValid() {
			return Event{}, fmt.Errorf("decode event: unknown partner type in %q", env.Name)
		}
		return Event{Kind: KindBalanceGlobal, Tipo: tipo}, nil
	}
	return Event{}, fmt.Errorf("decode event: unknown event name %q", env.Name)
}
