package repository

import (
	"time"

	"github.com/suminventa/kardex-api/internal/domain/entity"
)

// KardexFilter filtros para el listado de kardex de un producto.
type KardexFilter struct {
	From  *time.Time
	To    *time.Time
	Type  entity.MovementType // vacío = todos
	Limit int
}

// MovementRepository define el puerto del ledger de movimientos (kardex).
// Append-only: solo Create y lecturas; no existe Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListByProduct lista el kardex de un producto, más reciente primero.
	ListByProduct(productID string, filter KardexFilter) ([]*entity.Movement, error)
	// ListByLot lista los asientos de un lote, más antiguo primero.
	// Usado para reconstruir el saldo desde el ledger.
	ListByLot(lotID string) ([]*entity.Movement, error)
}
