package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/suminventa/kardex-api/internal/domain/entity"
)

// DocumentFilter filtros comunes para listados de documentos.
type DocumentFilter struct {
	From   *time.Time
	To     *time.Time
	Status entity.DocumentStatus // vacío = todos
	Limit  int
	Offset int
}

// ReceiptFilter filtros para listar entradas.
type ReceiptFilter struct {
	DocumentFilter
	SupplierID string
}

// ReceiptRepository define el puerto de persistencia para entradas.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	CreateLine(line *entity.ReceiptLine) error
	GetByID(id string) (*entity.Receipt, error)
	GetLines(receiptID string) ([]*entity.ReceiptLine, error)
	UpdateTotal(id string, total decimal.Decimal) error
	UpdateStatus(id string, status entity.DocumentStatus) error
	List(filter ReceiptFilter) ([]*entity.Receipt, error)
}
