package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

func TestEncodeDecode_TransactionUpdated(t *testing.T) {
	ev := Event{
		Kind: KindTransactionUpdated,
		Refs: []domain.PartnerRef{
			{Tipo: domain.PartnerMina, ID: "7"},
			domain.FixedRef(domain.PartnerRodMar),
		},
	}

	data, err := Encode(ev)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, ev, decoded)
}

func TestEncodeDecode_BalanceUpdated(t *testing.T) {
	ev := Event{
		Kind: KindBalanceUpdated,
		Refs: []domain.PartnerRef{{Tipo: domain.PartnerVolquetero, ID: "3"}},
	}

	data, err := Encode(ev)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, ev, decoded)
}

func TestEncode_BalanceGlobalEmbedsTipoInName(t *testing.T) {
	data, err := Encode(Event{Kind: KindBalanceGlobal, Tipo: domain.PartnerComprador})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"balanceGlobalActualizado:comprador"}`, string(data))

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, KindBalanceGlobal, decoded.Kind)
	assert.Equal(t, domain.PartnerComprador, decoded.Tipo)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(Event{Kind: KindBalanceGlobal, Tipo: "camiones"})
	assert.Error(t, err, "unknown partner type in dynamic name")

	_, err = Encode(Event{Kind: "something-else"})
	assert.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`{"name":"unknown-event"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"name":"balanceGlobalActualizado:camiones"}`))
	assert.Error(t, err, "dynamic name with unknown partner type")

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
