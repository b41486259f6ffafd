package postgres

import (
	"context"
	"fmt"

	"github.com/suminventa/kardex-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo consultas agregadas de stock sobre PostgreSQL. Solo lectura:
// corre contra el pool, fuera de las transacciones de posteo.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de consultas. Pasar el pool.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// AvailableByProduct devuelve la suma de existencias de los lotes disponibles.
func (r *StockRepo) AvailableByProduct(productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(current_quantity), 0)
		FROM lots WHERE product_id = $1 AND state = 'available'`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("available by product: %w", err)
	}
	return total, nil
}

// LowStock lista productos activos cuyo stock agregado está en o bajo su
// mínimo configurado. Productos sin mínimo (min_stock = 0) no alertan.
func (r *StockRepo) LowStock() ([]*repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.code, p.description, p.min_stock, COALESCE(SUM(l.current_quantity), 0) AS available
		FROM products p
		LEFT JOIN lots l ON l.product_id = p.id AND l.state = 'available'
		WHERE p.active AND p.min_stock > 0
		GROUP BY p.id, p.code, p.description, p.min_stock
		HAVING COALESCE(SUM(l.current_quantity), 0) <= p.min_stock
		ORDER BY available ASC, p.code ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []*repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.ProductCode, &row.Description,
			&row.MinStock, &row.Available); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// ExpiringSoon lista lotes con existencias que vencen dentro de la ventana.
// Incluye lotes ya vencidos (días negativos): siguen en el estante.
func (r *StockRepo) ExpiringSoon(days int) ([]*repository.ExpiringLotRow, error) {
	query := `
		SELECT l.id, l.product_id, p.code, l.batch_code,
		       to_char(l.expiration_date, 'YYYY-MM-DD'),
		       l.current_quantity, (l.expiration_date::date - CURRENT_DATE)
		FROM lots l
		JOIN products p ON p.id = l.product_id
		WHERE l.state = 'available'
		  AND l.expiration_date IS NOT NULL
		  AND l.expiration_date::date <= CURRENT_DATE + $1::int
		ORDER BY l.expiration_date ASC, p.code ASC`
	rows, err := r.q.Query(context.Background(), query, days)
	if err != nil {
		return nil, fmt.Errorf("expiring soon: %w", err)
	}
	defer rows.Close()
	var list []*repository.ExpiringLotRow
	for rows.Next() {
		var row repository.ExpiringLotRow
		if err := rows.Scan(&row.LotID, &row.ProductID, &row.ProductCode, &row.BatchCode,
			&row.ExpirationDate, &row.CurrentQty, &row.DaysToExpire); err != nil {
			return nil, fmt.Errorf("scan expiring lot: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Summary devuelve el resumen global de inventario para el dashboard.
func (r *StockRepo) Summary() (*repository.StockSummaryRow, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE active),
			(SELECT COUNT(*) FROM lots WHERE state = 'available'),
			(SELECT COALESCE(SUM(current_quantity), 0) FROM lots WHERE state = 'available'),
			(SELECT COUNT(*) FROM (
				SELECT p.id
				FROM products p
				LEFT JOIN lots l ON l.product_id = p.id AND l.state = 'available'
				WHERE p.active AND p.min_stock > 0
				GROUP BY p.id, p.min_stock
				HAVING COALESCE(SUM(l.current_quantity), 0) <= p.min_stock
			) low),
			(SELECT COUNT(*) FROM lots
			 WHERE state = 'available' AND expiration_date IS NOT NULL
			   AND expiration_date::date <= CURRENT_DATE + 30)`
	var s repository.StockSummaryRow
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalProducts, &s.TotalLots, &s.TotalUnits, &s.LowStockCount, &s.ExpiringCount,
	)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &s, nil
}
