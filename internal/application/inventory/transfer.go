package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// TransferUseCase mueve cantidad entre dos lotes del mismo producto, con dos
// asientos correlacionados (transfer_out / transfer_in) bajo un mismo número
// TRF. Invariante: origen_antes + destino_antes = origen_después + destino_después.
type TransferUseCase struct {
	tx TxRunner
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(tx TxRunner) *TransferUseCase {
	return &TransferUseCase{tx: tx}
}

// TransferInput transferencia entre lotes.
type TransferInput struct {
	SourceLotID string
	DestLotID   string
	Quantity    int64
	Notes       string
	ActorID     string
}

// TransferResult resultado de la transferencia.
type TransferResult struct {
	Number string
}

// Transfer descuenta del lote origen y suma al destino en una transacción.
// Los lotes se bloquean en orden ascendente de ID para evitar deadlock entre
// transferencias concurrentes en direcciones opuestas.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewBusinessRuleError("la cantidad a transferir debe ser mayor a 0")
	}
	if in.SourceLotID == in.DestLotID {
		return nil, domain.NewBusinessRuleError("el lote origen y destino no pueden ser el mismo")
	}

	var result *TransferResult
	err := uc.tx.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		seqRepo repository.SequenceRepository,
	) error {
		// Bloqueo en orden fijo (ID ascendente), independiente de la
		// dirección de la transferencia.
		firstID, secondID := in.SourceLotID, in.DestLotID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		first, err := lotRepo.GetForUpdate(firstID)
		if err != nil {
			return err
		}
		if first == nil {
			return &domain.NotFoundError{Resource: "lote", ID: firstID}
		}
		second, err := lotRepo.GetForUpdate(secondID)
		if err != nil {
			return err
		}
		if second == nil {
			return &domain.NotFoundError{Resource: "lote", ID: secondID}
		}

		source, dest := first, second
		if source.ID != in.SourceLotID {
			source, dest = second, first
		}

		if source.ProductID != dest.ProductID {
			return domain.NewBusinessRuleError("los lotes pertenecen a productos distintos")
		}
		if source.CurrentQty < in.Quantity {
			return &domain.InsufficientStockError{
				ProductID:     source.ProductID,
				Requested:     in.Quantity,
				BestAvailable: source.CurrentQty,
			}
		}

		seq, err := seqRepo.Next(entity.SeriesTransfer)
		if err != nil {
			return err
		}
		number := entity.FormatDocumentNumber(entity.SeriesTransfer, seq)
		transferID := uuid.New().String()
		now := time.Now()

		sourceAfter := source.CurrentQty - in.Quantity
		destAfter := dest.CurrentQty + in.Quantity
		if err := lotRepo.UpdateQuantity(source.ID, sourceAfter, entity.StateForQty(sourceAfter)); err != nil {
			return err
		}
		if err := lotRepo.UpdateQuantity(dest.ID, destAfter, entity.StateForQty(destAfter)); err != nil {
			return err
		}

		if err := movRepo.Create(&entity.Movement{
			ID:             uuid.New().String(),
			Date:           now,
			Type:           entity.MovementTransferOut,
			DocumentType:   entity.DocTypeTransfer,
			DocumentID:     transferID,
			DocumentNumber: number,
			ProductID:      source.ProductID,
			LotID:          source.ID,
			Quantity:       -in.Quantity,
			BalanceBefore:  source.CurrentQty,
			BalanceAfter:   sourceAfter,
			CreatedBy:      in.ActorID,
			Notes:          in.Notes,
		}); err != nil {
			return err
		}
		if err := movRepo.Create(&entity.Movement{
			ID:             uuid.New().String(),
			Date:           now,
			Type:           entity.MovementTransferIn,
			DocumentType:   entity.DocTypeTransfer,
			DocumentID:     transferID,
			DocumentNumber: number,
			ProductID:      dest.ProductID,
			LotID:          dest.ID,
			Quantity:       in.Quantity,
			BalanceBefore:  dest.CurrentQty,
			BalanceAfter:   destAfter,
			CreatedBy:      in.ActorID,
			Notes:          in.Notes,
		}); err != nil {
			return err
		}

		result = &TransferResult{Number: number}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
