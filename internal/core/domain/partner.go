package domain

import "github.com/shopspring/decimal"

// PartnerType identifies the kind of counterparty a transaction can reference.
type PartnerType string

const (
	PartnerMina       PartnerType = "mina"
	PartnerComprador  PartnerType = "comprador"
	PartnerVolquetero PartnerType = "volquetero"
	PartnerTercero    PartnerType = "tercero"

	// Fixed pseudo-partners. Their ID is the type name itself.
	PartnerRodMar   PartnerType = "rodmar"
	PartnerBanco    PartnerType = "banco"
	PartnerLCDM     PartnerType = "lcdm"
	PartnerPostobon PartnerType = "postobon"
)

// RegularPartnerTypes lists the partner types that have their own
// server-side list and aggregated-balance endpoints.
var RegularPartnerTypes = []PartnerType{
	PartnerMina,
	PartnerComprador,
	PartnerVolquetero,
	PartnerTercero,
}

// FixedPartnerTypes lists the internal pseudo-partners. They have no list
// endpoint but carry dedicated cache keys for their ledgers.
var FixedPartnerTypes = []PartnerType{
	PartnerRodMar,
	PartnerBanco,
	PartnerLCDM,
	PartnerPostobon,
}

// IsFixed reports whether the type is an internal pseudo-partner.
func (t PartnerType) IsFixed() bool {
	switch t {
	case PartnerRodMar, PartnerBanco, PartnerLCDM, PartnerPostobon:
		return true
	}
	return false
}

// IsValid reports whether the type is one of the known partner types.
func (t PartnerType) IsValid() bool {
	switch t {
	case PartnerMina, PartnerComprador, PartnerVolquetero, PartnerTercero:
		return true
	}
	return t.IsFixed()
}

// PartnerRef identifies one side of a transaction: a (tipo, id) pair.
// The ID is a numeric string for regular partners and the type name itself
// for fixed pseudo-partners.
type PartnerRef struct {
	Tipo PartnerType `json:"tipo"`
	ID   string      `json:"id"`
}

// FixedRef builds the canonical ref for a pseudo-partner.
func FixedRef(t PartnerType) PartnerRef {
	return PartnerRef{Tipo: t, ID: string(t)}
}

// Partner is a counterparty record: a mine, buyer, trucker or third party.
// Balance is always server-computed, never written from the client.
type Partner struct {
	PartnerID string          `json:"partnerID"`
	Tipo      PartnerType     `json:"tipo"`
	Nombre    string          `json:"nombre"`
	Telefono  string          `json:"telefono"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// Ref returns the PartnerRef for this partner.
func (p Partner) Ref() PartnerRef {
	return PartnerRef{Tipo: p.Tipo, ID: p.PartnerID}
}
