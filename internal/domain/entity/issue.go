package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de salida. Consignación y maleta exigen destino (cliente o maleta).
type IssueKind string

const (
	IssueSale        IssueKind = "sale"
	IssueConsignment IssueKind = "consignment"
	IssueBagTransfer IssueKind = "bag_transfer"
	IssueDonation    IssueKind = "donation"
	IssueSample      IssueKind = "sample"
)

// IsValid reporta si el tipo pertenece al conjunto cerrado.
func (k IssueKind) IsValid() bool {
	switch k {
	case IssueSale, IssueConsignment, IssueBagTransfer, IssueDonation, IssueSample:
		return true
	}
	return false
}

// RequiresClient reporta si el tipo exige un cliente como destino.
func (k IssueKind) RequiresClient() bool { return k == IssueConsignment }

// RequiresBag reporta si el tipo exige una maleta como destino.
func (k IssueKind) RequiresBag() bool { return k == IssueBagTransfer }

// Issue es una salida de mercancía: venta, consignación, traslado a maleta,
// donación o muestra. Cada línea descuenta de UN solo lote (sin fraccionar).
type Issue struct {
	ID        string
	Number    string // SAL-NNNNNN
	Kind      IssueKind
	ClientID  *string // destino para sale/consignment
	BagID     *string // destino para bag_transfer
	Date      time.Time
	Status    DocumentStatus
	Billed    bool // una salida facturada ya no puede anularse
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// IssueLine es una línea de salida. LotID, BatchCode y ExpirationDate quedan
// fijados al lote elegido en el momento de postear, para trazabilidad aunque
// el lote cambie de estado después.
type IssueLine struct {
	ID             string
	IssueID        string
	ProductID      string
	LotID          string
	Quantity       int64
	UnitPrice      decimal.Decimal
	BatchCode      *string
	ExpirationDate *time.Time
}
