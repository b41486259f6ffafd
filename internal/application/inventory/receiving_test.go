package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
)

func seedProduct(s *fakeStore, id, code string, reqLot, reqExp bool) {
	s.products[id] = &entity.Product{
		ID:                 id,
		Code:               code,
		PurchasePrice:      decimal.NewFromInt(60),
		SalePrice:          decimal.NewFromInt(100),
		RequiresLot:        reqLot,
		RequiresExpiration: reqExp,
		Active:             true,
	}
}

func dateP(s string) *time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return &d
}

func TestReceive_CreaUnLotePorLineaYCalculaTotal(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "MED-001", true, true)
	seedProduct(s, "p2", "MED-002", false, false)
	uc := inventory.NewReceivingUseCase(&fakeTxRunner{s})

	res, err := uc.Receive(context.Background(), inventory.ReceiveInput{
		SupplierID: "prov-1",
		Date:       time.Now(),
		ActorID:    "user-1",
		Lines: []inventory.ReceiveLineInput{
			{ProductID: "p1", Quantity: 100, UnitPrice: decimal.NewFromInt(10), BatchCode: "L-001", ExpirationDate: dateP("2026-01-01")},
			{ProductID: "p2", Quantity: 20, UnitPrice: decimal.NewFromFloat(2.5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ENT-000001", res.Number)
	// total = 100×10 + 20×2.5 = 1050
	assert.True(t, res.Total.Equal(decimal.NewFromInt(1050)), "total = %s", res.Total)

	// Un lote nuevo por línea, cantidad_actual = cantidad_inicial
	require.Len(t, s.lots, 2)
	for _, lot := range s.lots {
		assert.Equal(t, lot.InitialQty, lot.CurrentQty)
		assert.Equal(t, entity.LotStateAvailable, lot.State)
		// Asiento receipt con saldo 0 → cantidad
		movs := s.movementsByLot(lot.ID)
		require.Len(t, movs, 1)
		assert.Equal(t, entity.MovementReceipt, movs[0].Type)
		assert.Equal(t, int64(0), movs[0].BalanceBefore)
		assert.Equal(t, lot.InitialQty, movs[0].BalanceAfter)
		assert.Equal(t, lot.InitialQty, movs[0].Quantity)
	}

	receipt := s.receipts[res.ID]
	require.NotNil(t, receipt)
	assert.Equal(t, entity.DocumentPosted, receipt.Status)
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(1050)))
	assert.Len(t, s.receiptLines[res.ID], 2)
}

func TestReceive_PrecioCeroTomaPrecioDeCompra(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "MED-001", false, false)
	uc := inventory.NewReceivingUseCase(&fakeTxRunner{s})

	res, err := uc.Receive(context.Background(), inventory.ReceiveInput{
		SupplierID: "prov-1", ActorID: "u",
		Lines: []inventory.ReceiveLineInput{{ProductID: "p1", Quantity: 10}},
	})
	require.NoError(t, err)

	// precio de compra del producto = 60
	line := s.receiptLines[res.ID][0]
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(60)), "unit_price = %s", line.UnitPrice)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(600)), "total = %s", res.Total)

	movs := s.movementsByLot(line.LotID)
	require.Len(t, movs, 1)
	require.NotNil(t, movs[0].UnitCost)
	assert.True(t, movs[0].UnitCost.Equal(decimal.NewFromInt(60)))
}

func TestReceive_NumeracionConsecutiva(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "MED-001", false, false)
	uc := inventory.NewReceivingUseCase(&fakeTxRunner{s})

	lines := []inventory.ReceiveLineInput{{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(1)}}
	first, err := uc.Receive(context.Background(), inventory.ReceiveInput{SupplierID: "prov-1", ActorID: "u", Lines: lines})
	require.NoError(t, err)
	second, err := uc.Receive(context.Background(), inventory.ReceiveInput{SupplierID: "prov-1", ActorID: "u", Lines: lines})
	require.NoError(t, err)

	assert.Equal(t, "ENT-000001", first.Number)
	assert.Equal(t, "ENT-000002", second.Number)
}

func TestReceive_ValidacionReportaTodasLasLineas(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "MED-001", true, true)
	uc := inventory.NewReceivingUseCase(&fakeTxRunner{s})

	_, err := uc.Receive(context.Background(), inventory.ReceiveInput{
		SupplierID: "prov-1",
		ActorID:    "u",
		Lines: []inventory.ReceiveLineInput{
			{ProductID: "p1", Quantity: 10, UnitPrice: decimal.NewFromInt(1)},                      // falta batch y vencimiento
			{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromInt(-1), BatchCode: "L-001"}, // cantidad y precio inválidos, falta vencimiento
			{ProductID: "desconocido", Quantity: 5, UnitPrice: decimal.NewFromInt(1)},             // producto inexistente
		},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	// Todas las líneas ofensoras, no solo la primera
	assert.GreaterOrEqual(t, len(verr.Lines), 5)
	lines := map[int]bool{}
	for _, le := range verr.Lines {
		lines[le.Line] = true
	}
	assert.True(t, lines[1] && lines[2] && lines[3])

	// Rollback: nada persistido
	assert.Empty(t, s.lots)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.receipts)
	assert.Zero(t, s.sequences[entity.SeriesReceipt])
}

func TestReceive_SinLineas(t *testing.T) {
	s := newFakeStore()
	uc := inventory.NewReceivingUseCase(&fakeTxRunner{s})

	_, err := uc.Receive(context.Background(), inventory.ReceiveInput{SupplierID: "prov-1", ActorID: "u"})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestVoidReceipt_RevierteLotesYMarcaAnulada(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "MED-001", false, false)
	uc := inventory.NewReceivingUseCase(&fakeTxRunner{s})

	res, err := uc.Receive(context.Background(), inventory.ReceiveInput{
		SupplierID: "prov-1", ActorID: "u",
		Lines: []inventory.ReceiveLineInput{{ProductID: "p1", Quantity: 40, UnitPrice: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.VoidReceipt(context.Background(), res.ID, "u2"))

	assert.Equal(t, entity.DocumentVoided, s.receipts[res.ID].Status)
	line := s.receiptLines[res.ID][0]
	lot := s.lots[line.LotID]
	assert.Equal(t, int64(0), lot.CurrentQty)
	assert.Equal(t, entity.LotStateDepleted, lot.State)

	movs := s.movementsByLot(lot.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementVoidReceipt, movs[1].Type)
	assert.Equal(t, int64(-40), movs[1].Quantity)
	assert.Equal(t, int64(40), movs[1].BalanceBefore)
	assert.Equal(t, int64(0), movs[1].BalanceAfter)
	// Ledger reconstruible
	assert.Equal(t, lot.CurrentQty, s.ledgerBalance(lot.ID))
}

func TestVoidReceipt_FallaSiLoteParcialmenteConsumido(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "MED-001", false, false)
	recv := inventory.NewReceivingUseCase(&fakeTxRunner{s})
	iss := inventory.NewIssuanceUseCase(&fakeTxRunner{s})

	res, err := recv.Receive(context.Background(), inventory.ReceiveInput{
		SupplierID: "prov-1", ActorID: "u",
		Lines: []inventory.ReceiveLineInput{{ProductID: "p1", Quantity: 40, UnitPrice: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	// Se consume parte del lote recibido
	_, err = iss.Issue(context.Background(), inventory.IssueInput{
		Kind: entity.IssueSale, ActorID: "u",
		Lines: []inventory.IssueLineInput{{ProductID: "p1", Quantity: 10}},
	})
	require.NoError(t, err)

	err = recv.VoidReceipt(context.Background(), res.ID, "u")
	var brerr *domain.BusinessRuleError
	require.ErrorAs(t, err, &brerr)

	// Nada cambió con la anulación fallida
	assert.Equal(t, entity.DocumentPosted, s.receipts[res.ID].Status)
	line := s.receiptLines[res.ID][0]
	assert.Equal(t, int64(30), s.lots[line.LotID].CurrentQty)
}

func TestVoidReceipt_YaAnulada(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "MED-001", false, false)
	uc := inventory.NewReceivingUseCase(&fakeTxRunner{s})

	res, err := uc.Receive(context.Background(), inventory.ReceiveInput{
		SupplierID: "prov-1", ActorID: "u",
		Lines: []inventory.ReceiveLineInput{{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.VoidReceipt(context.Background(), res.ID, "u"))

	err = uc.VoidReceipt(context.Background(), res.ID, "u")
	var brerr *domain.BusinessRuleError
	assert.ErrorAs(t, err, &brerr)
}

func TestVoidReceipt_NoExiste(t *testing.T) {
	s := newFakeStore()
	uc := inventory.NewReceivingUseCase(&fakeTxRunner{s})

	err := uc.VoidReceipt(context.Background(), "nope", "u")
	var nferr *domain.NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "entrada", nferr.Resource)
}
