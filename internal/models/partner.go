package models

import "github.com/shopspring/decimal"

// Partner is the DB shape of a counterparty (mina, comprador, volquetero,
// tercero). Fixed pseudo-partners are not stored; they exist only as refs.
type Partner struct {
	PartnerID string          `json:"partnerID" db:"partner_id"`
	Tipo      string          `json:"tipo" db:"tipo"`
	Nombre    string          `json:"nombre" db:"nombre"`
	Telefono  string          `json:"telefono" db:"telefono"`
	Balance   decimal.Decimal `json:"balance" db:"balance"` // server-computed
	IsActive  bool            `json:"isActive" db:"is_active"`
	AuditFields
}
