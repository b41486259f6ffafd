package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, number, supplier_id, doc_type, doc_ref, date, status, total, notes, created_by, created_at`

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var rc entity.Receipt
	err := row.Scan(
		&rc.ID, &rc.Number, &rc.SupplierID, &rc.DocType, &rc.DocRef, &rc.Date,
		&rc.Status, &rc.Total, &rc.Notes, &rc.CreatedBy, &rc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// Create persiste la cabecera de una entrada. El number lleva constraint
// único: si dos transacciones llegaran al mismo número, la segunda falla con
// ConflictError en vez de duplicar.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Number, receipt.SupplierID, receipt.DocType, receipt.DocRef,
		receipt.Date, receipt.Status, receipt.Total, receipt.Notes, receipt.CreatedBy, receipt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Message: fmt.Sprintf("el número de entrada %s ya existe", receipt.Number)}
		}
		return fmt.Errorf("create receipt: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de entrada.
func (r *ReceiptRepo) CreateLine(line *entity.ReceiptLine) error {
	query := `
		INSERT INTO receipt_lines (id, receipt_id, product_id, lot_id, quantity, unit_price, batch_code, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ReceiptID, line.ProductID, line.LotID,
		line.Quantity, line.UnitPrice, line.BatchCode, line.ExpirationDate,
	)
	if err != nil {
		return fmt.Errorf("create receipt line: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	receipt, err := scanReceipt(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return receipt, nil
}

// GetLines obtiene las líneas de una entrada.
func (r *ReceiptRepo) GetLines(receiptID string) ([]*entity.ReceiptLine, error) {
	query := `
		SELECT id, receipt_id, product_id, lot_id, quantity, unit_price, batch_code, expiration_date
		FROM receipt_lines WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("get receipt lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.ReceiptLine
	for rows.Next() {
		var l entity.ReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.ProductID, &l.LotID,
			&l.Quantity, &l.UnitPrice, &l.BatchCode, &l.ExpirationDate); err != nil {
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateTotal fija el total de la entrada.
func (r *ReceiptRepo) UpdateTotal(id string, total decimal.Decimal) error {
	query := `UPDATE receipts SET total = $2 WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, total); err != nil {
		return fmt.Errorf("update receipt total: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado del documento (posted/voided).
func (r *ReceiptRepo) UpdateStatus(id string, status entity.DocumentStatus) error {
	query := `UPDATE receipts SET status = $2 WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, status); err != nil {
		return fmt.Errorf("update receipt status: %w", err)
	}
	return nil
}

// List lista entradas con filtros opcionales, más reciente primero.
func (r *ReceiptRepo) List(filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE 1=1`
	var args []any
	pos := 1
	if filter.SupplierID != "" {
		query += fmt.Sprintf(" AND supplier_id = $%d", pos)
		args = append(args, filter.SupplierID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
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
	query += fmt.Sprintf(" ORDER BY date DESC, number DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, receipt)
	}
	return list, rows.Err()
}
