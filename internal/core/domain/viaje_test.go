package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

func TestViaje_ComputeTotals(t *testing.T) {
	v := domain.Viaje{
		PesoCargue:    decimal.NewFromInt(30),
		PesoDescargue: decimal.NewFromInt(28),
		PrecioCompra:  decimal.NewFromInt(100),
		PrecioVenta:   decimal.NewFromInt(150),
		PrecioFlete:   decimal.NewFromInt(40),
	}
	v.ComputeTotals()

	// Purchase settles on load weight, sale and freight on unload weight.
	assert.True(t, decimal.NewFromInt(3000).Equal(v.TotalCompra), "totalCompra = 100 * 30")
	assert.True(t, decimal.NewFromInt(4200).Equal(v.TotalVenta), "totalVenta = 150 * 28")
	assert.True(t, decimal.NewFromInt(1120).Equal(v.TotalFlete), "totalFlete = 40 * 28")
	assert.True(t, decimal.NewFromInt(3080).Equal(v.ValorConsignar), "valorConsignar = venta - flete")
	assert.True(t, decimal.NewFromInt(80).Equal(v.Ganancia), "ganancia = venta - compra - flete")
}

func TestViaje_ComputeTotals_PendingTrip(t *testing.T) {
	// Before unload the sale-side figures stay at zero.
	v := domain.Viaje{
		PesoCargue:   decimal.NewFromInt(30),
		PrecioCompra: decimal.NewFromInt(100),
	}
	v.ComputeTotals()

	assert.True(t, decimal.NewFromInt(3000).Equal(v.TotalCompra))
	assert.True(t, v.TotalVenta.IsZero())
	assert.True(t, v.TotalFlete.IsZero())
	assert.True(t, v.ValorConsignar.IsZero())
}

func TestBalanceMap_Summarize(t *testing.T) {
	m := domain.BalanceMap{
		"1": {Balance: decimal.NewFromInt(100)},
		"2": {Balance: decimal.NewFromInt(-30)},
		"3": {Balance: decimal.NewFromInt(50)},
	}
	s := m.Summarize()

	assert.True(t, decimal.NewFromInt(150).Equal(s.Positives))
	assert.True(t, decimal.NewFromInt(30).Equal(s.Negatives))
	assert.True(t, decimal.NewFromInt(120).Equal(s.Net))
}
