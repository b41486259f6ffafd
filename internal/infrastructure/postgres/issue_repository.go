package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

var _ repository.IssueRepository = (*IssueRepo)(nil)

// IssueRepo implementación de IssueRepository sobre PostgreSQL.
type IssueRepo struct {
	q Querier
}

// NewIssueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIssueRepository(q Querier) *IssueRepo {
	return &IssueRepo{q: q}
}

const issueColumns = `id, number, kind, client_id, bag_id, date, status, billed, notes, created_by, created_at`

func scanIssue(row pgx.Row) (*entity.Issue, error) {
	var is entity.Issue
	err := row.Scan(
		&is.ID, &is.Number, &is.Kind, &is.ClientID, &is.BagID, &is.Date,
		&is.Status, &is.Billed, &is.Notes, &is.CreatedBy, &is.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &is, nil
}

// Create persiste la cabecera de una salida. Number lleva constraint único.
func (r *IssueRepo) Create(issue *entity.Issue) error {
	query := `
		INSERT INTO issues (` + issueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		issue.ID, issue.Number, issue.Kind, issue.ClientID, issue.BagID,
		issue.Date, issue.Status, issue.Billed, issue.Notes, issue.CreatedBy, issue.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Message: fmt.Sprintf("el número de salida %s ya existe", issue.Number)}
		}
		return fmt.Errorf("create issue: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de salida con su snapshot de lote.
func (r *IssueRepo) CreateLine(line *entity.IssueLine) error {
	query := `
		INSERT INTO issue_lines (id, issue_id, product_id, lot_id, quantity, unit_price, batch_code, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.IssueID, line.ProductID, line.LotID,
		line.Quantity, line.UnitPrice, line.BatchCode, line.ExpirationDate,
	)
	if err != nil {
		return fmt.Errorf("create issue line: %w", err)
	}
	return nil
}

// GetByID obtiene una salida por ID.
func (r *IssueRepo) GetByID(id string) (*entity.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = $1`
	issue, err := scanIssue(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue: %w", err)
	}
	return issue, nil
}

// GetLines obtiene las líneas de una salida.
func (r *IssueRepo) GetLines(issueID string) ([]*entity.IssueLine, error) {
	query := `
		SELECT id, issue_id, product_id, lot_id, quantity, unit_price, batch_code, expiration_date
		FROM issue_lines WHERE issue_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, issueID)
	if err != nil {
		return nil, fmt.Errorf("get issue lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.IssueLine
	for rows.Next() {
		var l entity.IssueLine
		if err := rows.Scan(&l.ID, &l.IssueID, &l.ProductID, &l.LotID,
			&l.Quantity, &l.UnitPrice, &l.BatchCode, &l.ExpirationDate); err != nil {
			return nil, fmt.Errorf("scan issue line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateStatus cambia el estado del documento (posted/voided).
func (r *IssueRepo) UpdateStatus(id string, status entity.DocumentStatus) error {
	query := `UPDATE issues SET status = $2 WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, status); err != nil {
		return fmt.Errorf("update issue status: %w", err)
	}
	return nil
}

// List lista salidas con filtros opcionales, más reciente primero.
func (r *IssueRepo) List(filter repository.IssueFilter) ([]*entity.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE 1=1`
	var args []any
	pos := 1
	if filter.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, filter.Kind)
		pos++
	}
	if filter.ClientID != "" {
		query += fmt.Sprintf(" AND client_id = $%d", pos)
		args = append(args, filter.ClientID)
		pos++
	}
	if filter.BagID != "" {
		query += fmt.Sprintf(" AND bag_id = $%d", pos)
		args = append(args, filter.BagID)
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
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()
	var list []*entity.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		list = append(list, issue)
	}
	return list, rows.Err()
}

// ListPendingToBill lista ventas y consignaciones posteadas aún sin facturar,
// las más antiguas primero (son las que más urge facturar).
func (r *IssueRepo) ListPendingToBill(clientID string) ([]*repository.PendingIssueRow, error) {
	query := `
		SELECT i.id, i.number, i.kind, i.client_id, i.bag_id, i.date, i.status, i.billed, i.notes, i.created_by, i.created_at,
		       COUNT(l.id), COALESCE(SUM(l.quantity), 0), (CURRENT_DATE - i.date::date)
		FROM issues i
		JOIN issue_lines l ON l.issue_id = i.id
		WHERE i.status = 'posted' AND i.billed = false AND i.kind IN ('sale', 'consignment')`
	var args []any
	if clientID != "" {
		query += ` AND i.client_id = $1`
		args = append(args, clientID)
	}
	query += `
		GROUP BY i.id, i.number, i.kind, i.client_id, i.bag_id, i.date, i.status, i.billed, i.notes, i.created_by, i.created_at
		ORDER BY i.date ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending to bill: %w", err)
	}
	defer rows.Close()
	var list []*repository.PendingIssueRow
	for rows.Next() {
		var is entity.Issue
		var row repository.PendingIssueRow
		if err := rows.Scan(&is.ID, &is.Number, &is.Kind, &is.ClientID, &is.BagID,
			&is.Date, &is.Status, &is.Billed, &is.Notes, &is.CreatedBy, &is.CreatedAt,
			&row.TotalItems, &row.TotalUnits, &row.DaysPending); err != nil {
			return nil, fmt.Errorf("scan pending issue: %w", err)
		}
		row.Issue = &is
		list = append(list, &row)
	}
	return list, rows.Err()
}

// BagContents lista lo que está actualmente en maletas: líneas de salidas
// bag_transfer posteadas y no anuladas.
func (r *IssueRepo) BagContents(bagID string) ([]*repository.BagContentRow, error) {
	query := `
		SELECT i.bag_id, i.number, l.product_id, l.lot_id, l.batch_code,
		       to_char(l.expiration_date, 'YYYY-MM-DD'), l.quantity, to_char(i.date, 'YYYY-MM-DD')
		FROM issues i
		JOIN issue_lines l ON l.issue_id = i.id
		WHERE i.kind = 'bag_transfer' AND i.status = 'posted'`
	var args []any
	if bagID != "" {
		query += ` AND i.bag_id = $1`
		args = append(args, bagID)
	}
	query += ` ORDER BY i.bag_id, i.date, i.number`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bag contents: %w", err)
	}
	defer rows.Close()
	var list []*repository.BagContentRow
	for rows.Next() {
		var row repository.BagContentRow
		if err := rows.Scan(&row.BagID, &row.IssueNumber, &row.ProductID, &row.LotID,
			&row.BatchCode, &row.ExpirationDate, &row.Quantity, &row.SentAt); err != nil {
			return nil, fmt.Errorf("scan bag content: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
