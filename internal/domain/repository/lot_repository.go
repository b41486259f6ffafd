package repository

import "github.com/suminventa/kardex-api/internal/domain/entity"

// LotRepository define el puerto de persistencia para lotes. Es el único
// escritor de saldos de lote; todo cambio de cantidad pasa por aquí dentro
// de una transacción.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Lot, error)
	// FindAvailableForUpdate devuelve los lotes disponibles de un producto,
	// bloqueados, ordenados por fecha de vencimiento ascendente (sin fecha al
	// final) y created_at ascendente. Si batchCode no es vacío, restringe al
	// batch. La selección del lote la hace el dominio (inventory.PickLot).
	FindAvailableForUpdate(productID, batchCode string) ([]*entity.Lot, error)
	// UpdateQuantity fija la cantidad actual y el estado del lote.
	UpdateQuantity(id string, qty int64, state entity.LotState) error
}
