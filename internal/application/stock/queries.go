package stock

import (
	"context"
	"strconv"
	"time"

	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// Cache puerto opcional para cachear agregados de stock. Las lecturas admiten
// datos levemente desfasados respecto a un posteo en vuelo, así que un TTL
// corto sin invalidación es suficiente.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
}

// QueryUseCase consultas de solo lectura: stock disponible, stock bajo,
// próximos a vencer, kardex, resumen, pendientes de facturar y maletas.
// Corre fuera de toda transacción de escritura y no toma locks.
type QueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
	issueRepo repository.IssueRepository
	lotRepo   repository.LotRepository
	cache     Cache // puede ser nil
	cacheTTL  time.Duration
}

// NewQueryUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	issueRepo repository.IssueRepository,
	lotRepo repository.LotRepository,
	cache Cache,
) *QueryUseCase {
	return &QueryUseCase{
		stockRepo: stockRepo,
		movRepo:   movRepo,
		issueRepo: issueRepo,
		lotRepo:   lotRepo,
		cache:     cache,
		cacheTTL:  30 * time.Second,
	}
}

// AvailableStock devuelve Σ current_quantity de los lotes disponibles del
// producto. Pasa por el caché si está configurado.
func (uc *QueryUseCase) AvailableStock(ctx context.Context, productID string) (int64, error) {
	key := "stock:available:" + productID
	if uc.cache != nil {
		if v, ok := uc.cache.Get(ctx, key); ok {
			if qty, err := strconv.ParseInt(v, 10, 64); err == nil {
				return qty, nil
			}
		}
	}
	qty, err := uc.stockRepo.AvailableByProduct(productID)
	if err != nil {
		return 0, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, key, strconv.FormatInt(qty, 10), uc.cacheTTL)
	}
	return qty, nil
}

// LowStock productos cuyo stock agregado está en o bajo su mínimo configurado.
func (uc *QueryUseCase) LowStock(ctx context.Context) ([]*repository.LowStockRow, error) {
	return uc.stockRepo.LowStock()
}

// ExpiringSoon lotes con existencias que vencen dentro de [hoy, hoy+days].
func (uc *QueryUseCase) ExpiringSoon(ctx context.Context, days int) ([]*repository.ExpiringLotRow, error) {
	if days <= 0 {
		return nil, domain.NewValidationError("los días deben ser mayores a 0")
	}
	return uc.stockRepo.ExpiringSoon(days)
}

// Kardex asientos de un producto, más reciente primero, con filtros
// opcionales de rango de fechas y tipo de movimiento.
func (uc *QueryUseCase) Kardex(ctx context.Context, productID string, filter repository.KardexFilter) ([]*entity.Movement, error) {
	if productID == "" {
		return nil, domain.NewValidationError("producto requerido")
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, domain.NewValidationError("tipo de movimiento inválido: " + string(filter.Type))
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return uc.movRepo.ListByProduct(productID, filter)
}

// Summary resumen global de inventario para el dashboard.
func (uc *QueryUseCase) Summary(ctx context.Context) (*repository.StockSummaryRow, error) {
	return uc.stockRepo.Summary()
}

// PendingToBill ventas y consignaciones posteadas aún sin facturar.
func (uc *QueryUseCase) PendingToBill(ctx context.Context, clientID string) ([]*repository.PendingIssueRow, error) {
	return uc.issueRepo.ListPendingToBill(clientID)
}

// BagContents mercancía actualmente en maletas.
func (uc *QueryUseCase) BagContents(ctx context.Context, bagID string) ([]*repository.BagContentRow, error) {
	return uc.issueRepo.BagContents(bagID)
}

// LotDetail detalle de un lote por ID.
func (uc *QueryUseCase) LotDetail(ctx context.Context, lotID string) (*entity.Lot, error) {
	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, &domain.NotFoundError{Resource: "lote", ID: lotID}
	}
	return lot, nil
}

// LotLedger asientos de un lote en orden cronológico. Permite verificar que
// current_quantity = initial_quantity + Σ deltas del ledger.
func (uc *QueryUseCase) LotLedger(ctx context.Context, lotID string) ([]*entity.Movement, error) {
	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, &domain.NotFoundError{Resource: "lote", ID: lotID}
	}
	return uc.movRepo.ListByLot(lotID)
}
