package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, product_id, supplier_id, batch_code, expiration_date, initial_quantity, current_quantity, state, created_at`

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.SupplierID, &l.BatchCode, &l.ExpirationDate,
		&l.InitialQty, &l.CurrentQty, &l.State, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote nuevo.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, product_id, supplier_id, batch_code, expiration_date, initial_quantity, current_quantity, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.SupplierID, lot.BatchCode, lot.ExpirationDate,
		lot.InitialQty, lot.CurrentQty, lot.State, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// GetForUpdate obtiene un lote y bloquea su fila (SELECT FOR UPDATE).
func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1 FOR UPDATE`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot for update: %w", err)
	}
	return lot, nil
}

// FindAvailableForUpdate devuelve los lotes disponibles del producto,
// bloqueados, en el orden que consume la política de selección: vencimiento
// ascendente (sin fecha al final) y luego created_at ascendente.
//
// El orden de bloqueo difiere del de las transferencias (id ascendente); un
// cruce con una transferencia concurrente sobre los mismos lotes puede
// terminar en deadlock, que Postgres resuelve abortando una de las dos
// transacciones. El caller reintenta o propaga el error.
func (r *LotRepo) FindAvailableForUpdate(productID, batchCode string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE product_id = $1 AND state = 'available'`
	args := []any{productID}
	if batchCode != "" {
		query += ` AND batch_code = $2`
		args = append(args, batchCode)
	}
	query += `
		ORDER BY expiration_date ASC NULLS LAST, created_at ASC
		FOR UPDATE`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("find available lots: %w", err)
	}
	defer rows.Close()
	var lots []*entity.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// UpdateQuantity fija la cantidad actual y el estado del lote.
func (r *LotRepo) UpdateQuantity(id string, qty int64, state entity.LotState) error {
	query := `UPDATE lots SET current_quantity = $2, state = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, qty, state)
	if err != nil {
		return fmt.Errorf("update lot quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lot quantity: lote %s no existe", id)
	}
	return nil
}
