package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// ReceivingUseCase postea entradas de mercancía: una línea = un lote nuevo
// con su asiento de kardex, numeración ENT-NNNNNN dentro de la misma
// transacción. También anula entradas completas (VoidReceipt).
type ReceivingUseCase struct {
	tx TxRunner
}

// NewReceivingUseCase construye el caso de uso.
func NewReceivingUseCase(tx TxRunner) *ReceivingUseCase {
	return &ReceivingUseCase{tx: tx}
}

// ReceiveLineInput línea de entrada: producto, cantidad, precio y datos de lote.
type ReceiveLineInput struct {
	ProductID      string
	Quantity       int64
	UnitPrice      decimal.Decimal
	BatchCode      string
	ExpirationDate *time.Time
}

// ReceiveInput entrada completa a postear.
type ReceiveInput struct {
	SupplierID string
	DocType    string // factura, remisión...
	DocRef     string // número del documento del proveedor
	Date       time.Time
	Notes      string
	ActorID    string
	Lines      []ReceiveLineInput
}

// ReceiveResult documento creado.
type ReceiveResult struct {
	ID     string
	Number string
	Total  decimal.Decimal
}

// Receive postea la entrada: valida TODAS las líneas (acumulando errores, no
// solo el primero), numera la serie ENT, crea un lote por línea con
// cantidad_actual = cantidad_inicial = cantidad, y asienta un movimiento
// receipt con saldo 0 → cantidad. Todo dentro de una transacción.
func (uc *ReceivingUseCase) Receive(ctx context.Context, in ReceiveInput) (*ReceiveResult, error) {
	if in.SupplierID == "" {
		return nil, domain.NewValidationError("proveedor requerido")
	}
	if len(in.Lines) == 0 {
		return nil, domain.NewValidationError("la entrada no tiene líneas")
	}

	var result *ReceiveResult
	err := uc.tx.RunDocument(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		seqRepo repository.SequenceRepository,
		receiptRepo repository.ReceiptRepository,
		_ repository.IssueRepository,
		productRepo repository.ProductRepository,
	) error {
		// Validación por línea contra las banderas del producto; se acumulan
		// todos los errores antes de fallar.
		var lineErrs []domain.LineError
		products := make(map[string]*entity.Product, len(in.Lines))
		for i, line := range in.Lines {
			n := i + 1
			if line.Quantity <= 0 {
				lineErrs = append(lineErrs, domain.LineError{Line: n, Field: "quantity", Message: "la cantidad debe ser mayor a 0"})
			}
			if line.UnitPrice.IsNegative() {
				lineErrs = append(lineErrs, domain.LineError{Line: n, Field: "unit_price", Message: "el precio no puede ser negativo"})
			}
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				lineErrs = append(lineErrs, domain.LineError{Line: n, Field: "product_id", Message: "producto no encontrado"})
				continue
			}
			products[line.ProductID] = product
			if product.RequiresLot && line.BatchCode == "" {
				lineErrs = append(lineErrs, domain.LineError{Line: n, Field: "batch_code", Message: "el producto " + product.Code + " requiere número de lote"})
			}
			if product.RequiresExpiration && line.ExpirationDate == nil {
				lineErrs = append(lineErrs, domain.LineError{Line: n, Field: "expiration_date", Message: "el producto " + product.Code + " requiere fecha de vencimiento"})
			}
		}
		if len(lineErrs) > 0 {
			return &domain.ValidationError{Message: "entrada inválida", Lines: lineErrs}
		}

		seq, err := seqRepo.Next(entity.SeriesReceipt)
		if err != nil {
			return err
		}
		now := time.Now()
		receipt := &entity.Receipt{
			ID:         uuid.New().String(),
			Number:     entity.FormatDocumentNumber(entity.SeriesReceipt, seq),
			SupplierID: in.SupplierID,
			DocType:    in.DocType,
			DocRef:     in.DocRef,
			Date:       in.Date,
			Status:     entity.DocumentPosted,
			Total:      decimal.Zero,
			Notes:      in.Notes,
			CreatedBy:  in.ActorID,
			CreatedAt:  now,
		}
		if err := receiptRepo.Create(receipt); err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range in.Lines {
			// Precio cero toma el precio de compra del producto.
			unitPrice := line.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = products[line.ProductID].PurchasePrice
			}
			lot := &entity.Lot{
				ID:             uuid.New().String(),
				ProductID:      line.ProductID,
				SupplierID:     in.SupplierID,
				ExpirationDate: line.ExpirationDate,
				InitialQty:     line.Quantity,
				CurrentQty:     line.Quantity,
				State:          entity.LotStateAvailable,
				CreatedAt:      now,
			}
			if line.BatchCode != "" {
				batch := line.BatchCode
				lot.BatchCode = &batch
			}
			if err := lotRepo.Create(lot); err != nil {
				return err
			}

			if err := receiptRepo.CreateLine(&entity.ReceiptLine{
				ID:             uuid.New().String(),
				ReceiptID:      receipt.ID,
				ProductID:      line.ProductID,
				LotID:          lot.ID,
				Quantity:       line.Quantity,
				UnitPrice:      unitPrice,
				BatchCode:      lot.BatchCode,
				ExpirationDate: line.ExpirationDate,
			}); err != nil {
				return err
			}

			unitCost := unitPrice
			if err := movRepo.Create(&entity.Movement{
				ID:             uuid.New().String(),
				Date:           now,
				Type:           entity.MovementReceipt,
				DocumentType:   entity.DocTypeReceipt,
				DocumentID:     receipt.ID,
				DocumentNumber: receipt.Number,
				ProductID:      line.ProductID,
				LotID:          lot.ID,
				Quantity:       line.Quantity,
				BalanceBefore:  0,
				BalanceAfter:   line.Quantity,
				UnitCost:       &unitCost,
				CreatedBy:      in.ActorID,
			}); err != nil {
				return err
			}

			total = total.Add(decimal.NewFromInt(line.Quantity).Mul(unitPrice))
		}

		if err := receiptRepo.UpdateTotal(receipt.ID, total); err != nil {
			return err
		}
		result = &ReceiveResult{ID: receipt.ID, Number: receipt.Number, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// VoidReceipt anula una entrada posteada. Precondición: cada lote conserva al
// menos la cantidad originalmente recibida (nada se ha salido ni transferido
// por debajo de lo posteado); si no, BusinessRuleError nombrando el batch.
// Revierte cada lote, asienta void_receipt con delta negativo y marca el
// documento como anulado.
func (uc *ReceivingUseCase) VoidReceipt(ctx context.Context, documentID, actorID string) error {
	return uc.tx.RunDocument(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.SequenceRepository,
		receiptRepo repository.ReceiptRepository,
		_ repository.IssueRepository,
		_ repository.ProductRepository,
	) error {
		receipt, err := receiptRepo.GetByID(documentID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return &domain.NotFoundError{Resource: "entrada", ID: documentID}
		}
		if receipt.Status != entity.DocumentPosted {
			return domain.NewBusinessRuleError("la entrada %s ya está anulada", receipt.Number)
		}

		lines, err := receiptRepo.GetLines(receipt.ID)
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
			if lot.CurrentQty < line.Quantity {
				return domain.NewBusinessRuleError(
					"no se puede anular: el lote %s ya fue parcialmente consumido", lot.Batch())
			}

			newQty := lot.CurrentQty - line.Quantity
			if err := lotRepo.UpdateQuantity(lot.ID, newQty, entity.StateForQty(newQty)); err != nil {
				return err
			}

			unitCost := line.UnitPrice
			if err := movRepo.Create(&entity.Movement{
				ID:             uuid.New().String(),
				Date:           now,
				Type:           entity.MovementVoidReceipt,
				DocumentType:   entity.DocTypeReceipt,
				DocumentID:     receipt.ID,
				DocumentNumber: receipt.Number,
				ProductID:      line.ProductID,
				LotID:          lot.ID,
				Quantity:       -line.Quantity,
				BalanceBefore:  lot.CurrentQty,
				BalanceAfter:   newQty,
				UnitCost:       &unitCost,
				CreatedBy:      actorID,
				Notes:          "Anulación de entrada",
			}); err != nil {
				return err
			}
		}

		return receiptRepo.UpdateStatus(receipt.ID, entity.DocumentVoided)
	})
}
