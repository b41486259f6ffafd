package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex (conjunto cerrado).
type MovementType string

const (
	MovementReceipt     MovementType = "receipt"
	MovementIssue       MovementType = "issue"
	MovementAdjustment  MovementType = "adjustment"
	MovementTransferOut MovementType = "transfer_out"
	MovementTransferIn  MovementType = "transfer_in"
	MovementVoidReceipt MovementType = "void_receipt"
	MovementVoidIssue   MovementType = "void_issue"
)

// IsValid reporta si el tipo pertenece al conjunto cerrado.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementReceipt, MovementIssue, MovementAdjustment,
		MovementTransferOut, MovementTransferIn,
		MovementVoidReceipt, MovementVoidIssue:
		return true
	}
	return false
}

// Tipos de documento que originan movimientos.
type DocumentType string

const (
	DocTypeReceipt    DocumentType = "receipt"
	DocTypeIssue      DocumentType = "issue"
	DocTypeAdjustment DocumentType = "adjustment"
	DocTypeTransfer   DocumentType = "transfer"
)

// Movement es un asiento del kardex: el registro inmutable de un cambio de
// cantidad sobre un lote, con saldo anterior y posterior. El ledger es
// append-only: los asientos jamás se actualizan ni se borran.
type Movement struct {
	ID             string
	Date           time.Time
	Type           MovementType
	DocumentType   DocumentType
	DocumentID     string
	DocumentNumber string
	ProductID      string
	LotID          string
	Quantity       int64 // delta con signo: positivo entra, negativo sale
	BalanceBefore  int64
	BalanceAfter   int64
	UnitCost       *decimal.Decimal
	CreatedBy      string
	Notes          string
}
