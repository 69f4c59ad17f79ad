package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

func TestSignFor(t *testing.T) {
	tests := []struct {
		name string
		tipo domain.PartnerType
		side domain.TransactionSide
		want int
	}{
		{name: "mina as origin", tipo: domain.PartnerMina, side: domain.SideOrigin, want: 1},
		{name: "mina as destination", tipo: domain.PartnerMina, side: domain.SideDestination, want: -1},
		{name: "comprador as origin", tipo: domain.PartnerComprador, side: domain.SideOrigin, want: 1},
		{name: "comprador as destination", tipo: domain.PartnerComprador, side: domain.SideDestination, want: -1},
		{name: "volquetero as origin", tipo: domain.PartnerVolquetero, side: domain.SideOrigin, want: -1},
		{name: "volquetero as destination", tipo: domain.PartnerVolquetero, side: domain.SideDestination, want: -1},
		{name: "tercero as origin", tipo: domain.PartnerTercero, side: domain.SideOrigin, want: -1},
		{name: "tercero as destination", tipo: domain.PartnerTercero, side: domain.SideDestination, want: -1},
		{name: "rodmar as origin", tipo: domain.PartnerRodMar, side: domain.SideOrigin, want: 1},
		{name: "rodmar as destination", tipo: domain.PartnerRodMar, side: domain.SideDestination, want: -1},
		{name: "banco as origin", tipo: domain.PartnerBanco, side: domain.SideOrigin, want: 1},
		{name: "banco as destination", tipo: domain.PartnerBanco, side: domain.SideDestination, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SignFor(tt.tipo, tt.side))
		})
	}
}

func TestTransaccion_ContributionFor(t *testing.T) {
	mina := domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"}
	volquetero := domain.PartnerRef{Tipo: domain.PartnerVolquetero, ID: "3"}
	txn := domain.Transaccion{
		DeQuien:   mina,
		ParaQuien: volquetero,
		Monto:     decimal.NewFromInt(500),
	}

	assert.True(t, decimal.NewFromInt(500).Equal(txn.ContributionFor(mina)),
		"origin mina counts positive")
	assert.True(t, decimal.NewFromInt(-500).Equal(txn.ContributionFor(volquetero)),
		"destination volquetero counts negative")
	assert.True(t, decimal.Zero.Equal(txn.ContributionFor(domain.PartnerRef{Tipo: domain.PartnerComprador, ID: "9"})),
		"uninvolved partner contributes zero")
}

func TestTransaccion_ContributionFor_VolqueteroAlwaysNegative(t *testing.T) {
	volquetero := domain.PartnerRef{Tipo: domain.PartnerVolquetero, ID: "3"}
	rodmar := domain.FixedRef(domain.PartnerRodMar)

	asOrigin := domain.Transaccion{DeQuien: volquetero, ParaQuien: rodmar, Monto: decimal.NewFromInt(200)}
	asDestination := domain.Transaccion{DeQuien: rodmar, ParaQuien: volquetero, Monto: decimal.NewFromInt(200)}

	assert.True(t, decimal.NewFromInt(-200).Equal(asOrigin.ContributionFor(volquetero)))
	assert.True(t, decimal.NewFromInt(-200).Equal(asDestination.ContributionFor(volquetero)))
}
