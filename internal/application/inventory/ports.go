package inventory

import (
	"context"

	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el todo-o-nada del motor: si fn
// devuelve error no queda ningún asiento ni saldo parcialmente visible.
type TxRunner interface {
	// Run transacción con los repos mínimos (ajustes y transferencias).
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		seqRepo repository.SequenceRepository,
	) error) error

	// RunDocument transacción con repos de documentos (entradas, salidas y
	// sus anulaciones).
	RunDocument(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		seqRepo repository.SequenceRepository,
		receiptRepo repository.ReceiptRepository,
		issueRepo repository.IssueRepository,
		productRepo repository.ProductRepository,
	) error) error
}
