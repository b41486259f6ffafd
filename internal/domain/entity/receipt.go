package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt es una entrada de mercancía: documento que agrupa una o más líneas,
// cada una de las cuales crea exactamente un lote nuevo.
type Receipt struct {
	ID         string
	Number     string // ENT-NNNNNN
	SupplierID string
	DocType    string // factura, remisión, etc. (referencia del proveedor)
	DocRef     string // número del documento del proveedor
	Date       time.Time
	Status     DocumentStatus
	Total      decimal.Decimal // Σ cantidad × precio_unitario
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
}

// ReceiptLine es una línea de entrada. LotID apunta al lote que la línea creó.
type ReceiptLine struct {
	ID             string
	ReceiptID      string
	ProductID      string
	LotID          string
	Quantity       int64
	UnitPrice      decimal.Decimal
	BatchCode      *string
	ExpirationDate *time.Time
}

// Subtotal devuelve cantidad × precio unitario.
func (l *ReceiptLine) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice)
}
