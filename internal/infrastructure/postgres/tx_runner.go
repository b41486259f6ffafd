package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Todo
// posteo corre completo dentro de una tx: documento, lotes, asientos y
// numeración se confirman o revierten juntos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Para operaciones sin documento propio (ajuste,
// transferencia).
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewLotRepository(tx)
	movRepo := NewMovementRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(lotRepo, movRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocument inicia una transacción con el juego completo de repos
// documentales (para entradas y salidas).
func (r *TxRunner) RunDocument(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	seqRepo repository.SequenceRepository,
	receiptRepo repository.ReceiptRepository,
	issueRepo repository.IssueRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewLotRepository(tx)
	movRepo := NewMovementRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	receiptRepo := NewReceiptRepository(tx)
	issueRepo := NewIssueRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(lotRepo, movRepo, seqRepo, receiptRepo, issueRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
