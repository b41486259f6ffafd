package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	domaininv "github.com/suminventa/kardex-api/internal/domain/inventory"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// IssuanceUseCase postea salidas (venta, consignación, maleta, donación,
// muestra) eligiendo y descontando lotes bajo FIFO-por-vencimiento, y anula
// salidas posteadas no facturadas (VoidIssue).
type IssuanceUseCase struct {
	tx TxRunner
}

// NewIssuanceUseCase construye el caso de uso.
func NewIssuanceUseCase(tx TxRunner) *IssuanceUseCase {
	return &IssuanceUseCase{tx: tx}
}

// IssueLineInput línea de salida. BatchCode restringe la selección a ese
// batch; UnitPrice cero toma el precio de venta del producto.
type IssueLineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	BatchCode string
}

// IssueInput salida completa a postear.
type IssueInput struct {
	Kind     entity.IssueKind
	ClientID string // requerido para consignment
	BagID    string // requerido para bag_transfer
	Date     time.Time
	Notes    string
	ActorID  string
	Lines    []IssueLineInput
}

// IssueResult documento creado.
type IssueResult struct {
	ID     string
	Number string
}

// Issue postea la salida. Por línea: toma bloqueados los lotes disponibles
// del producto, elige con la política FIFO-por-vencimiento (un solo lote debe
// cubrir la línea completa; sin fraccionamiento) y descuenta. Si ningún lote
// alcanza, InsufficientStockError con la mejor cantidad encontrada, y la
// transacción completa se revierte sin dejar asientos.
func (uc *IssuanceUseCase) Issue(ctx context.Context, in IssueInput) (*IssueResult, error) {
	var lineErrs []domain.LineError
	if !in.Kind.IsValid() {
		return nil, domain.NewValidationError("tipo de salida inválido: " + string(in.Kind))
	}
	if in.Kind.RequiresClient() && in.ClientID == "" {
		return nil, domain.NewValidationError("las consignaciones requieren un cliente")
	}
	if in.Kind.RequiresBag() && in.BagID == "" {
		return nil, domain.NewValidationError("las salidas a maleta requieren una maleta")
	}
	if len(in.Lines) == 0 {
		return nil, domain.NewValidationError("la salida no tiene líneas")
	}
	for i, line := range in.Lines {
		if line.Quantity <= 0 {
			lineErrs = append(lineErrs, domain.LineError{Line: i + 1, Field: "quantity", Message: "la cantidad debe ser mayor a 0"})
		}
		if line.ProductID == "" {
			lineErrs = append(lineErrs, domain.LineError{Line: i + 1, Field: "product_id", Message: "producto requerido"})
		}
	}
	if len(lineErrs) > 0 {
		return nil, &domain.ValidationError{Message: "salida inválida", Lines: lineErrs}
	}

	var result *IssueResult
	err := uc.tx.RunDocument(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		seqRepo repository.SequenceRepository,
		_ repository.ReceiptRepository,
		issueRepo repository.IssueRepository,
		productRepo repository.ProductRepository,
	) error {
		seq, err := seqRepo.Next(entity.SeriesIssue)
		if err != nil {
			return err
		}
		now := time.Now()
		issue := &entity.Issue{
			ID:        uuid.New().String(),
			Number:    entity.FormatDocumentNumber(entity.SeriesIssue, seq),
			Kind:      in.Kind,
			Date:      in.Date,
			Status:    entity.DocumentPosted,
			Notes:     in.Notes,
			CreatedBy: in.ActorID,
			CreatedAt: now,
		}
		if in.ClientID != "" {
			clientID := in.ClientID
			issue.ClientID = &clientID
		}
		if in.BagID != "" {
			bagID := in.BagID
			issue.BagID = &bagID
		}
		if err := issueRepo.Create(issue); err != nil {
			return err
		}

		for _, line := range in.Lines {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.NotFoundError{Resource: "producto", ID: line.ProductID}
			}

			candidates, err := lotRepo.FindAvailableForUpdate(line.ProductID, line.BatchCode)
			if err != nil {
				return err
			}
			lot, best := domaininv.PickLot(candidates, line.Quantity, line.BatchCode)
			if lot == nil {
				return &domain.InsufficientStockError{
					ProductID:     line.ProductID,
					Requested:     line.Quantity,
					BestAvailable: best,
				}
			}

			newQty := lot.CurrentQty - line.Quantity
			if err := lotRepo.UpdateQuantity(lot.ID, newQty, entity.StateForQty(newQty)); err != nil {
				return err
			}

			price := line.UnitPrice
			if price.IsZero() {
				price = product.SalePrice
			}
			if err := issueRepo.CreateLine(&entity.IssueLine{
				ID:             uuid.New().String(),
				IssueID:        issue.ID,
				ProductID:      line.ProductID,
				LotID:          lot.ID,
				Quantity:       line.Quantity,
				UnitPrice:      price,
				BatchCode:      lot.BatchCode,
				ExpirationDate: lot.ExpirationDate,
			}); err != nil {
				return err
			}

			if err := movRepo.Create(&entity.Movement{
				ID:             uuid.New().String(),
				Date:           now,
				Type:           entity.MovementIssue,
				DocumentType:   entity.DocTypeIssue,
				DocumentID:     issue.ID,
				DocumentNumber: issue.Number,
				ProductID:      line.ProductID,
				LotID:          lot.ID,
				Quantity:       -line.Quantity,
				BalanceBefore:  lot.CurrentQty,
				BalanceAfter:   newQty,
				UnitCost:       &price,
				CreatedBy:      in.ActorID,
			}); err != nil {
				return err
			}
		}

		result = &IssueResult{ID: issue.ID, Number: issue.Number}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// VoidIssue anula una salida posteada y NO facturada, restaurando en cada
// lote exactamente la cantidad que salió (sumar stock no puede quedar en
// negativo, así que no hay chequeo de suficiencia en esta dirección).
func (uc *IssuanceUseCase) VoidIssue(ctx context.Context, documentID, actorID string) error {
	return uc.tx.RunDocument(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.SequenceRepository,
		_ repository.ReceiptRepository,
		issueRepo repository.IssueRepository,
		_ repository.ProductRepository,
	) error {
		issue, err := issueRepo.GetByID(documentID)
		if err != nil {
			return err
		}
		if issue == nil {
			return &domain.NotFoundError{Resource: "salida", ID: documentID}
		}
		if issue.Status != entity.DocumentPosted {
			return domain.NewBusinessRuleError("la salida %s ya está anulada", issue.Number)
		}
		if issue.Billed {
			return domain.NewBusinessRuleError("no se puede anular la salida %s: ya fue facturada", issue.Number)
		}

		lines, err := issueRepo.GetLines(issue.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, line := range lines {
			lot, err := lotRepo.GetForUpdate(line.LotID)
			if err != nil {
				return err
			}
			if lot == nil {
				return &domain.NotFoundError{Resource: "lote", ID: line.LotID}
			}

			newQty := lot.CurrentQty + line.Quantity
			if err := lotRepo.UpdateQuantity(lot.ID, newQty, entity.LotStateAvailable); err != nil {
				return err
			}

			price := line.UnitPrice
			if err := movRepo.Create(&entity.Movement{
				ID:             uuid.New().String(),
				Date:           now,
				Type:           entity.MovementVoidIssue,
				DocumentType:   entity.DocTypeIssue,
				DocumentID:     issue.ID,
				DocumentNumber: issue.Number,
				ProductID:      line.ProductID,
				LotID:          lot.ID,
				Quantity:       line.Quantity,
				BalanceBefore:  lot.CurrentQty,
				BalanceAfter:   newQty,
				UnitCost:       &price,
				CreatedBy:      actorID,
				Notes:          "Anulación de salida",
			}); err != nil {
				return err
			}
		}

		return issueRepo.UpdateStatus(issue.ID, entity.DocumentVoided)
	})
}
