package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/inventory"
)

func lot(id string, qty int64, exp string, created string) *entity.Lot {
	l := &entity.Lot{
		ID:         id,
		ProductID:  "prod-1",
		InitialQty: qty,
		CurrentQty: qty,
		State:      entity.StateForQty(qty),
	}
	if exp != "" {
		d, _ := time.Parse("2006-01-02", exp)
		l.ExpirationDate = &d
	}
	if created == "" {
		created = "2024-01-01"
	}
	l.CreatedAt, _ = time.Parse("2006-01-02", created)
	return l
}

func withBatch(l *entity.Lot, batch string) *entity.Lot {
	l.BatchCode = &batch
	return l
}

// Lote A (100 und, vence 2025-01-01) y lote B (50 und, vence 2025-06-01):
// pedir 60 debe elegir A por vencer primero y alcanzar solo, aunque B sea
// el lote más pequeño.
func TestPickLot_EligeElQueVencePrimeroYAlcanza(t *testing.T) {
	a := lot("A", 100, "2025-01-01", "2024-02-01")
	b := lot("B", 50, "2025-06-01", "2024-01-01")

	chosen, best := inventory.PickLot([]*entity.Lot{b, a}, 60, "")
	require.NotNil(t, chosen)
	assert.Equal(t, "A", chosen.ID)
	assert.Equal(t, int64(100), best)
}

// Si el lote que vence primero no alcanza, se salta al siguiente que sí.
func TestPickLot_SaltaLotesQueNoAlcanzan(t *testing.T) {
	a := lot("A", 30, "2025-01-01", "2024-01-01")
	b := lot("B", 80, "2025-06-01", "2024-01-01")

	chosen, _ := inventory.PickLot([]*entity.Lot{a, b}, 60, "")
	require.NotNil(t, chosen)
	assert.Equal(t, "B", chosen.ID)
}

// Solo lote B con 50: pedir 60 falla y reporta 50 como mejor disponible.
func TestPickLot_InsuficienteReportaMejorDisponible(t *testing.T) {
	b := lot("B", 50, "2025-06-01", "")

	chosen, best := inventory.PickLot([]*entity.Lot{b}, 60, "")
	assert.Nil(t, chosen)
	assert.Equal(t, int64(50), best)
}

// Dos lotes de 40 no cubren una línea de 60 aunque sumen 80: sin fraccionar.
func TestPickLot_NoFraccionaEntreLotes(t *testing.T) {
	a := lot("A", 40, "2025-01-01", "")
	b := lot("B", 40, "2025-06-01", "")

	chosen, best := inventory.PickLot([]*entity.Lot{a, b}, 60, "")
	assert.Nil(t, chosen)
	assert.Equal(t, int64(40), best)
}

// Lotes sin fecha de vencimiento van al final del orden.
func TestPickLot_SinVencimientoAlFinal(t *testing.T) {
	noExp := lot("N", 100, "", "2023-01-01")
	withExp := lot("E", 100, "2026-12-31", "2024-06-01")

	chosen, _ := inventory.PickLot([]*entity.Lot{noExp, withExp}, 10, "")
	require.NotNil(t, chosen)
	assert.Equal(t, "E", chosen.ID)
}

// Solo sin vencimiento: desempata por created_at ascendente.
func TestPickLot_DesempatePorCreatedAt(t *testing.T) {
	old := lot("OLD", 100, "", "2023-01-01")
	recent := lot("NEW", 100, "", "2024-01-01")

	chosen, _ := inventory.PickLot([]*entity.Lot{recent, old}, 10, "")
	require.NotNil(t, chosen)
	assert.Equal(t, "OLD", chosen.ID)
}

// Mismo vencimiento: también desempata por created_at.
func TestPickLot_MismoVencimientoDesempataPorCreatedAt(t *testing.T) {
	first := lot("F", 100, "2025-03-01", "2024-01-01")
	second := lot("S", 100, "2025-03-01", "2024-02-01")

	chosen, _ := inventory.PickLot([]*entity.Lot{second, first}, 10, "")
	require.NotNil(t, chosen)
	assert.Equal(t, "F", chosen.ID)
}

// Batch solicitado restringe el conjunto de candidatos.
func TestPickLot_RestriccionPorBatch(t *testing.T) {
	a := withBatch(lot("A", 100, "2025-01-01", ""), "L-001")
	b := withBatch(lot("B", 100, "2025-06-01", ""), "L-002")

	chosen, _ := inventory.PickLot([]*entity.Lot{a, b}, 10, "L-002")
	require.NotNil(t, chosen)
	assert.Equal(t, "B", chosen.ID)

	chosen, best := inventory.PickLot([]*entity.Lot{a, b}, 200, "L-002")
	assert.Nil(t, chosen)
	assert.Equal(t, int64(100), best)
}

// Lotes agotados nunca participan.
func TestPickLot_IgnoraAgotados(t *testing.T) {
	empty := lot("Z", 0, "2024-01-01", "")
	ok := lot("A", 20, "2025-01-01", "")

	chosen, best := inventory.PickLot([]*entity.Lot{empty, ok}, 10, "")
	require.NotNil(t, chosen)
	assert.Equal(t, "A", chosen.ID)
	assert.Equal(t, int64(20), best)
}
