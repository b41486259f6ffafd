package entity

import "time"

// Estados de un lote. Un lote nunca se borra: transiciona available ⇄ depleted
// según su cantidad actual (depleted ⟺ current_quantity = 0).
type LotState string

const (
	LotStateAvailable LotState = "available"
	LotStateDepleted  LotState = "depleted"
)

// IsValid reporta si el estado pertenece al conjunto cerrado.
func (s LotState) IsValid() bool {
	return s == LotStateAvailable || s == LotStateDepleted
}

// Lot es un lote de recepción: una partida discreta de un producto con su
// propio batch y vencimiento. Solo el ReceivingProcessor crea lotes; el resto
// de operaciones los mutan vía el ledger, jamás los elimina.
type Lot struct {
	ID             string
	ProductID      string
	SupplierID     string
	BatchCode      *string    // obligatorio si Product.RequiresLot
	ExpirationDate *time.Time // obligatorio si Product.RequiresExpiration
	InitialQty     int64
	CurrentQty     int64
	State          LotState
	CreatedAt      time.Time
}

// StateForQty devuelve el estado que corresponde a una cantidad dada.
func StateForQty(qty int64) LotState {
	if qty > 0 {
		return LotStateAvailable
	}
	return LotStateDepleted
}

// Batch devuelve el batch code o cadena vacía si el lote no lo tiene.
func (l *Lot) Batch() string {
	if l.BatchCode == nil {
		return ""
	}
	return *l.BatchCode
}
