package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "partner list",
			key:  PartnersKey(domain.PartnerMina),
			want: "partners:mina:-:-",
		},
		{
			name: "balances",
			key:  BalancesKey(domain.PartnerVolquetero),
			want: "balances:volquetero:-:-",
		},
		{
			name: "partner-scoped transactions",
			key:  PartnerTransaccionesKey(domain.PartnerRef{Tipo: domain.PartnerComprador, ID: "12"}),
			want: "transacciones:comprador:12:-",
		},
		{
			name: "global transaction list",
			key:  GlobalTransaccionesKey(),
			want: "transacciones:-:-:global",
		},
		{
			name: "trip list",
			key:  ViajesKey(),
			want: "viajes:-:-:global",
		},
		{
			name: "fixed pseudo-partner ledger",
			key:  PartnerTransaccionesKey(domain.FixedRef(domain.PartnerRodMar)),
			want: "transacciones:rodmar:rodmar:-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.String())
		})
	}
}

func TestKey_Matches(t *testing.T) {
	key := Key{Resource: ResourceTransacciones, Tipo: domain.PartnerMina, PartnerID: "7", Variant: "p2"}

	assert.True(t, key.Matches(Key{}), "empty predicate matches everything")
	assert.True(t, key.Matches(Key{Resource: ResourceTransacciones}))
	assert.True(t, key.Matches(Key{Resource: ResourceTransacciones, Tipo: domain.PartnerMina, PartnerID: "7"}))
	assert.False(t, key.Matches(Key{Resource: ResourceViajes}))
	assert.False(t, key.Matches(Key{Resource: ResourceTransacciones, PartnerID: "8"}))
	assert.False(t, key.Matches(Key{Variant: "global"}))
}

func TestKey_Pattern(t *testing.T) {
	pred := Key{Resource: ResourceTransacciones, Tipo: domain.PartnerMina, PartnerID: "7"}
	assert.Equal(t, "transacciones:mina:7:*", pred.Pattern())
	assert.Equal(t, "*:*:*:*", Key{}.Pattern())
}
