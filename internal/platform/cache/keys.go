package cache

import (
	"strings"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

// Resource names a family of cached query results.
type Resource string

const (
	// ResourcePartners is the per-type partner list.
	ResourcePartners Resource = "partners"
	// ResourceBalances is the per-type aggregated balance map.
	ResourceBalances Resource = "balances"
	// ResourceTransacciones covers transaction list views, global or scoped
	// to one partner.
	ResourceTransacciones Resource = "transacciones"
	// ResourceViajes covers trip list views.
	ResourceViajes Resource = "viajes"
)

// Key is a structured cache key: (resource, partnerType, partnerID, variant).
// Invalidation works as a typed tuple match instead of ad-hoc string
// prefix matching, so "invalidate all derived views of partner P" is a
// set-membership query.
type Key struct {
	Resource  Resource
	Tipo      domain.PartnerType
	PartnerID string
	Variant   string
}

const keySlotEmpty = "-"

// String renders the canonical storage form. Every slot is rendered so the
// form is unambiguous and glob-matchable: "res:tipo:id:variant".
func (k Key) String() string {
	return strings.Join([]string{
		slot(string(k.Resource)),
		slot(string(k.Tipo)),
		slot(k.PartnerID),
		slot(k.Variant),
	}, ":")
}

func slot(s string) string {
	if s == "" {
		return keySlotEmpty
	}
	return s
}

// Matches reports whether the key satisfies the predicate: every non-empty
// predicate slot must equal the corresponding key slot.
func (k Key) Matches(pred Key) bool {
	if pred.Resource != "" && pred.Resource != k.Resource {
		return false
	}
	if pred.Tipo != "" && pred.Tipo != k.Tipo {
		return false
	}
	if pred.PartnerID != "" && pred.PartnerID != k.PartnerID {
		return false
	}
	if pred.Variant != "" && pred.Variant != k.Variant {
		return false
	}
	return true
}

// Pattern renders the predicate as a Redis glob, empty slots matching any.
func (k Key) Pattern() string {
	return strings.Join([]string{
		globSlot(string(k.Resource)),
		globSlot(string(k.Tipo)),
		globSlot(k.PartnerID),
		globSlot(k.Variant),
	}, ":")
}

func globSlot(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

// PartnersKey is the list cache key for one partner type.
func PartnersKey(tipo domain.PartnerType) Key {
	return Key{Resource: ResourcePartners, Tipo: tipo}
}

// BalancesKey is the aggregated-balance cache key for one partner type.
func BalancesKey(tipo domain.PartnerType) Key {
	return Key{Resource: ResourceBalances, Tipo: tipo}
}

// PartnerTransaccionesKey scopes transaction views to one partner.
func PartnerTransaccionesKey(ref domain.PartnerRef) Key {
	return Key{Resource: ResourceTransacciones, Tipo: ref.Tipo, PartnerID: ref.ID}
}

// GlobalTransaccionesKey is the unscoped transaction list.
func GlobalTransaccionesKey() Key {
	return Key{Resource: ResourceTransacciones, Variant: "global"}
}

// ViajesKey is the trip list cache key.
func ViajesKey() Key {
	return Key{Resource: ResourceViajes, Variant: "global"}
}
