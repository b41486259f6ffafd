package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Desde el motor de inventario
// es identidad inmutable de solo lectura: las altas/bajas de catálogo viven
// fuera del core.
type Product struct {
	ID                 string
	Code               string
	Reference          string
	Description        string
	Unit               string // UNIDAD, CAJA, PAR...
	PurchasePrice      decimal.Decimal
	SalePrice          decimal.Decimal
	RequiresLot        bool // exige batch_code al recibir
	RequiresExpiration bool // exige fecha de vencimiento al recibir
	MinStock           int64
	MaxStock           int64
	Active             bool
	CreatedAt          time.Time
}
