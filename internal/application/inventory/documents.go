package inventory

import (
	"context"

	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// DocumentQueryUseCase lecturas de documentos (entradas y salidas). Corre
// sobre repos atados al pool, fuera de las transacciones de posteo.
type DocumentQueryUseCase struct {
	receiptRepo repository.ReceiptRepository
	issueRepo   repository.IssueRepository
}

// NewDocumentQueryUseCase construye el caso de uso de lectura.
func NewDocumentQueryUseCase(receiptRepo repository.ReceiptRepository, issueRepo repository.IssueRepository) *DocumentQueryUseCase {
	return &DocumentQueryUseCase{receiptRepo: receiptRepo, issueRepo: issueRepo}
}

// GetReceipt devuelve una entrada con sus líneas.
func (uc *DocumentQueryUseCase) GetReceipt(ctx context.Context, id string) (*entity.Receipt, []*entity.ReceiptLine, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if receipt == nil {
		return nil, nil, &domain.NotFoundError{Resource: "entrada", ID: id}
	}
	lines, err := uc.receiptRepo.GetLines(id)
	if err != nil {
		return nil, nil, err
	}
	return receipt, lines, nil
}

// ListReceipts lista entradas con filtros.
func (uc *DocumentQueryUseCase) ListReceipts(ctx context.Context, filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return uc.receiptRepo.List(filter)
}

// GetIssue devuelve una salida con sus líneas.
func (uc *DocumentQueryUseCase) GetIssue(ctx context.Context, id string) (*entity.Issue, []*entity.IssueLine, error) {
	issue, err := uc.issueRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if issue == nil {
		return nil, nil, &domain.NotFoundError{Resource: "salida", ID: id}
	}
	lines, err := uc.issueRepo.GetLines(id)
	if err != nil {
		return nil, nil, err
	}
	return issue, lines, nil
}

// ListIssues lista salidas con filtros.
func (uc *DocumentQueryUseCase) ListIssues(ctx context.Context, filter repository.IssueFilter) ([]*entity.Issue, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return uc.issueRepo.List(filter)
}
