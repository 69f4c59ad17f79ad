package domain

// TransactionSide says which end of a transaction a partner occupies.
type TransactionSide string

const (
	SideOrigin      TransactionSide = "origin"      // deQuien
	SideDestination TransactionSide = "destination" // paraQuien
)

// SignFor returns the sign (+1 or -1) a transaction amount contributes to a
// partner's displayed balance, given the partner's type and which side of the
// transaction it occupies.
//
// The convention is not symmetric across partner types. Mines, buyers and the
// fixed internal accounts flip sign with the side they occupy: money they
// originate counts for them (+), money sent to them counts against (-).
// Truckers and third parties accrue their positive side from trip-derived
// freight, so any transaction touching them is a payment against that accrual
// and contributes negatively regardless of direction.
//
// Every balance rendering must go through this function; it is the single
// implementation of the rule.
func SignFor(t PartnerType, side TransactionSide) int {
	switch t {
	case PartnerVolquetero, PartnerTercero:
		return -1
	default:
		// mina, comprador and the fixed pseudo-partners
		if side == SideOrigin {
			return 1
		}
		return -1
	}
}
