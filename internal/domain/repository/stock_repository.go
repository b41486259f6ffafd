package repository

// LowStockRow producto cuyo stock agregado está en o bajo su mínimo.
type LowStockRow struct {
	ProductID   string
	ProductCode string
	Description string
	MinStock    int64
	Available   int64
}

// ExpiringLotRow lote con existencias que vence dentro de la ventana pedida.
type ExpiringLotRow struct {
	LotID          string
	ProductID      string
	ProductCode    string
	BatchCode      *string
	ExpirationDate string // ISO yyyy-mm-dd
	CurrentQty     int64
	DaysToExpire   int
}

// StockSummaryRow resumen global de inventario (dashboard).
type StockSummaryRow struct {
	TotalProducts int64
	TotalLots     int64
	TotalUnits    int64
	LowStockCount int64
	ExpiringCount int64 // lotes que vencen en los próximos 30 días
}

// StockRepository define el puerto de consultas agregadas de stock.
// Solo lectura: corre fuera de la transacción de escritura y puede observar
// agregados levemente desfasados respecto a un posteo en vuelo.
type StockRepository interface {
	// AvailableByProduct devuelve Σ current_quantity de los lotes disponibles.
	AvailableByProduct(productID string) (int64, error)
	LowStock() ([]*LowStockRow, error)
	ExpiringSoon(days int) ([]*ExpiringLotRow, error)
	Summary() (*StockSummaryRow, error)
}
