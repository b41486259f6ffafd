package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL.
// Solo inserta y lee: la tabla no se actualiza ni se borra jamás.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, date, type, document_type, document_id, document_number, product_id, lot_id, quantity, balance_before, balance_after, unit_cost, created_by, notes`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var documentID *string
	err := row.Scan(
		&m.ID, &m.Date, &m.Type, &m.DocumentType, &documentID, &m.DocumentNumber,
		&m.ProductID, &m.LotID, &m.Quantity, &m.BalanceBefore, &m.BalanceAfter,
		&m.UnitCost, &m.CreatedBy, &m.Notes,
	)
	if err != nil {
		return nil, err
	}
	if documentID != nil {
		m.DocumentID = *documentID
	}
	return &m, nil
}

// Create persiste un asiento del kardex.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	documentID := (*string)(nil)
	if movement.DocumentID != "" {
		documentID = &movement.DocumentID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Date, movement.Type, movement.DocumentType,
		documentID, movement.DocumentNumber, movement.ProductID, movement.LotID,
		movement.Quantity, movement.BalanceBefore, movement.BalanceAfter,
		movement.UnitCost, movement.CreatedBy, movement.Notes,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct lista el kardex de un producto, más reciente primero.
func (r *MovementRepo) ListByProduct(productID string, filter repository.KardexFilter) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, id DESC LIMIT $%d", pos)
	args = append(args, filter.Limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByLot lista los asientos de un lote, más antiguo primero. En ese orden
// el saldo del lote es reconstruible sumando los deltas.
func (r *MovementRepo) ListByLot(lotID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements WHERE lot_id = $1
		ORDER BY date ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list movements by lot: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
