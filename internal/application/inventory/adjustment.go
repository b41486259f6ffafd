package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// AdjustmentUseCase corrige la cantidad de un lote a un valor absoluto
// (p.ej. después de un conteo físico). El delta queda registrado en el kardex.
type AdjustmentUseCase struct {
	tx TxRunner
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(tx TxRunner) *AdjustmentUseCase {
	return &AdjustmentUseCase{tx: tx}
}

// AdjustInput ajuste absoluto sobre un lote. NewQuantity es la cantidad
// autoritativa en mano, NO un delta.
type AdjustInput struct {
	LotID       string
	NewQuantity int64
	Reason      string // conteo_fisico, daño, vencimiento...
	Notes       string
	ActorID     string
}

// AdjustResult resultado del ajuste.
type AdjustResult struct {
	Number   string
	Delta    int64
	NewState entity.LotState
}

// Adjust fija la cantidad del lote en NewQuantity, recalcula el estado
// (depleted si queda en 0) y asienta un movimiento adjustment con el delta y
// los saldos anterior/posterior. Numeración AJU en la misma transacción.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	if in.NewQuantity < 0 {
		return nil, domain.NewValidationError("la cantidad nueva no puede ser negativa")
	}
	if in.Reason == "" {
		return nil, domain.NewValidationError("el motivo del ajuste es requerido")
	}

	var result *AdjustResult
	err := uc.tx.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		seqRepo repository.SequenceRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(in.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return &domain.NotFoundError{Resource: "lote", ID: in.LotID}
		}

		delta := in.NewQuantity - lot.CurrentQty
		state := entity.StateForQty(in.NewQuantity)
		if err := lotRepo.UpdateQuantity(lot.ID, in.NewQuantity, state); err != nil {
			return err
		}

		seq, err := seqRepo.Next(entity.SeriesAdjustment)
		if err != nil {
			return err
		}
		number := entity.FormatDocumentNumber(entity.SeriesAdjustment, seq)

		// El motivo viaja en las notas del asiento: el ajuste no tiene
		// documento propio más allá de su número de serie.
		notes := in.Reason
		if in.Notes != "" {
			notes += ": " + in.Notes
		}
		if err := movRepo.Create(&entity.Movement{
			ID:             uuid.New().String(),
			Date:           time.Now(),
			Type:           entity.MovementAdjustment,
			DocumentType:   entity.DocTypeAdjustment,
			DocumentNumber: number,
			ProductID:      lot.ProductID,
			LotID:          lot.ID,
			Quantity:       delta,
			BalanceBefore:  lot.CurrentQty,
			BalanceAfter:   in.NewQuantity,
			CreatedBy:      in.ActorID,
			Notes:          notes,
		}); err != nil {
			return err
		}

		result = &AdjustResult{Number: number, Delta: delta, NewState: state}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
