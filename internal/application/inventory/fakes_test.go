package inventory_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// fakeStore es un almacén en memoria compartido por los repos fake. El
// txRunner fake toma un snapshot antes de cada transacción y lo restaura si
// fn falla, de modo que los tests pueden afirmar el todo-o-nada real.
type fakeStore struct {
	products     map[string]*entity.Product
	lots         map[string]*entity.Lot
	movements    []*entity.Movement
	receipts     map[string]*entity.Receipt
	receiptLines map[string][]*entity.ReceiptLine
	issues       map[string]*entity.Issue
	issueLines   map[string][]*entity.IssueLine
	sequences    map[entity.DocumentSeries]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:     map[string]*entity.Product{},
		lots:         map[string]*entity.Lot{},
		receipts:     map[string]*entity.Receipt{},
		receiptLines: map[string][]*entity.ReceiptLine{},
		issues:       map[string]*entity.Issue{},
		issueLines:   map[string][]*entity.IssueLine{},
		sequences:    map[entity.DocumentSeries]int64{},
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.lots {
		l := *v
		c.lots[k] = &l
	}
	for _, m := range s.movements {
		mm := *m
		c.movements = append(c.movements, &mm)
	}
	for k, v := range s.receipts {
		r := *v
		c.receipts[k] = &r
	}
	for k, lines := range s.receiptLines {
		for _, ln := range lines {
			l := *ln
			c.receiptLines[k] = append(c.receiptLines[k], &l)
		}
	}
	for k, v := range s.issues {
		i := *v
		c.issues[k] = &i
	}
	for k, lines := range s.issueLines {
		for _, ln := range lines {
			l := *ln
			c.issueLines[k] = append(c.issueLines[k], &l)
		}
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.lots = snap.lots
	s.movements = snap.movements
	s.receipts = snap.receipts
	s.receiptLines = snap.receiptLines
	s.issues = snap.issues
	s.issueLines = snap.issueLines
	s.sequences = snap.sequences
}

// movementsByLot asientos de un lote en orden de inserción.
func (s *fakeStore) movementsByLot(lotID string) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range s.movements {
		if m.LotID == lotID {
			out = append(out, m)
		}
	}
	return out
}

// ledgerBalance reconstruye el saldo de un lote desde el ledger:
// initial_quantity + Σ deltas.
func (s *fakeStore) ledgerBalance(lotID string) int64 {
	lot := s.lots[lotID]
	// Los asientos receipt ya incluyen la cantidad inicial como delta, así
	// que la reconstrucción parte de cero para lotes creados por entrada y
	// de InitialQty para lotes sembrados directamente en el test.
	var sum int64
	seeded := true
	for _, m := range s.movementsByLot(lotID) {
		if m.Type == entity.MovementReceipt {
			seeded = false
		}
		sum += m.Quantity
	}
	if seeded {
		return lot.InitialQty + sum
	}
	return sum
}

// ── repos fake ───────────────────────────────────────────────────────────────

type fakeLotRepo struct{ s *fakeStore }

func (r *fakeLotRepo) Create(lot *entity.Lot) error {
	l := *lot
	r.s.lots[lot.ID] = &l
	return nil
}

func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error) {
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLotRepo) GetForUpdate(id string) (*entity.Lot, error) { return r.GetByID(id) }

func (r *fakeLotRepo) FindAvailableForUpdate(productID, batchCode string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if l.ProductID != productID || l.State != entity.LotStateAvailable {
			continue
		}
		if batchCode != "" && l.Batch() != batchCode {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeLotRepo) UpdateQuantity(id string, qty int64, state entity.LotState) error {
	l := r.s.lots[id]
	l.CurrentQty = qty
	l.State = state
	return nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, _ repository.KardexFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			out = append(out, r.s.movements[i])
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByLot(lotID string) ([]*entity.Movement, error) {
	return r.s.movementsByLot(lotID), nil
}

type fakeSequenceRepo struct{ s *fakeStore }

func (r *fakeSequenceRepo) Next(series entity.DocumentSeries) (int64, error) {
	r.s.sequences[series]++
	return r.s.sequences[series], nil
}

type fakeReceiptRepo struct{ s *fakeStore }

func (r *fakeReceiptRepo) Create(receipt *entity.Receipt) error {
	cp := *receipt
	r.s.receipts[receipt.ID] = &cp
	return nil
}

func (r *fakeReceiptRepo) CreateLine(line *entity.ReceiptLine) error {
	cp := *line
	r.s.receiptLines[line.ReceiptID] = append(r.s.receiptLines[line.ReceiptID], &cp)
	return nil
}

func (r *fakeReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	rec, ok := r.s.receipts[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeReceiptRepo) GetLines(receiptID string) ([]*entity.ReceiptLine, error) {
	return r.s.receiptLines[receiptID], nil
}

func (r *fakeReceiptRepo) UpdateTotal(id string, total decimal.Decimal) error {
	r.s.receipts[id].Total = total
	return nil
}

func (r *fakeReceiptRepo) UpdateStatus(id string, status entity.DocumentStatus) error {
	r.s.receipts[id].Status = status
	return nil
}

func (r *fakeReceiptRepo) List(_ repository.ReceiptFilter) ([]*entity.Receipt, error) {
	return nil, nil
}

type fakeIssueRepo struct{ s *fakeStore }

func (r *fakeIssueRepo) Create(issue *entity.Issue) error {
	cp := *issue
	r.s.issues[issue.ID] = &cp
	return nil
}

func (r *fakeIssueRepo) CreateLine(line *entity.IssueLine) error {
	cp := *line
	r.s.issueLines[line.IssueID] = append(r.s.issueLines[line.IssueID], &cp)
	return nil
}

func (r *fakeIssueRepo) GetByID(id string) (*entity.Issue, error) {
	is, ok := r.s.issues[id]
	if !ok {
		return nil, nil
	}
	cp := *is
	return &cp, nil
}

func (r *fakeIssueRepo) GetLines(issueID string) ([]*entity.IssueLine, error) {
	return r.s.issueLines[issueID], nil
}

func (r *fakeIssueRepo) UpdateStatus(id string, status entity.DocumentStatus) error {
	r.s.issues[id].Status = status
	return nil
}

func (r *fakeIssueRepo) List(_ repository.IssueFilter) ([]*entity.Issue, error) { return nil, nil }

func (r *fakeIssueRepo) ListPendingToBill(_ string) ([]*repository.PendingIssueRow, error) {
	return nil, nil
}

func (r *fakeIssueRepo) BagContents(_ string) ([]*repository.BagContentRow, error) {
	return nil, nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// ── tx runner fake ───────────────────────────────────────────────────────────

// fakeTxRunner implementa inventory.TxRunner con semántica de rollback real
// sobre el fakeStore.
type fakeTxRunner struct{ s *fakeStore }

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.LotRepository,
	repository.MovementRepository,
	repository.SequenceRepository,
) error) error {
	snap := t.s.clone()
	err := fn(&fakeLotRepo{t.s}, &fakeMovementRepo{t.s}, &fakeSequenceRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

func (t *fakeTxRunner) RunDocument(_ context.Context, fn func(
	repository.LotRepository,
	repository.MovementRepository,
	repository.SequenceRepository,
	repository.ReceiptRepository,
	repository.IssueRepository,
	repository.ProductRepository,
) error) error {
	snap := t.s.clone()
	err := fn(
		&fakeLotRepo{t.s}, &fakeMovementRepo{t.s}, &fakeSequenceRepo{t.s},
		&fakeReceiptRepo{t.s}, &fakeIssueRepo{t.s}, &fakeProductRepo{t.s},
	)
	if err != nil {
		t.s.restore(snap)
	}
	return err
}
