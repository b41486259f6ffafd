package inventory

import (
	"sort"

	"github.com/suminventa/kardex-api/internal/domain/entity"
)

// PickLot implementa la política FIFO-por-vencimiento (servicio de dominio).
// Recibe los lotes disponibles de un producto y elige el primero que pueda
// cubrir SOLO la cantidad completa, ordenando por fecha de vencimiento
// ascendente (sin fecha al final) y created_at ascendente como desempate.
//
// No se fracciona una línea entre varios lotes: si ningún lote alcanza por sí
// solo, devuelve nil aunque la suma de varios lotes sea suficiente. El segundo
// valor es la mayor cantidad disponible en un solo lote elegible, para el
// diagnóstico de InsufficientStockError.
func PickLot(lots []*entity.Lot, quantity int64, batchCode string) (*entity.Lot, int64) {
	candidates := make([]*entity.Lot, 0, len(lots))
	var best int64
	for _, l := range lots {
		if l.State != entity.LotStateAvailable {
			continue
		}
		if batchCode != "" && l.Batch() != batchCode {
			continue
		}
		if l.CurrentQty > best {
			best = l.CurrentQty
		}
		if l.CurrentQty >= quantity {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		return nil, best
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		switch {
		case a.ExpirationDate == nil && b.ExpirationDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.ExpirationDate == nil:
			return false // sin vencimiento va al final
		case b.ExpirationDate == nil:
			return true
		case a.ExpirationDate.Equal(*b.ExpirationDate):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.ExpirationDate.Before(*b.ExpirationDate)
		}
	})
	return candidates[0], best
}
