package repository

import "github.com/suminventa/kardex-api/internal/domain/entity"

// IssueFilter filtros para listar salidas.
type IssueFilter struct {
	DocumentFilter
	Kind     entity.IssueKind // vacío = todas
	ClientID string
	BagID    string
}

// PendingIssueRow salida posteada de venta/consignación aún sin facturar.
type PendingIssueRow struct {
	Issue       *entity.Issue
	TotalItems  int
	TotalUnits  int64
	DaysPending int
}

// BagContentRow una línea actualmente en maleta (salida bag_transfer vigente).
type BagContentRow struct {
	BagID          string
	IssueNumber    string
	ProductID      string
	LotID          string
	BatchCode      *string
	ExpirationDate *string // ISO yyyy-mm-dd; nil si el lote no vence
	Quantity       int64
	SentAt         string
}

// IssueRepository define el puerto de persistencia para salidas.
type IssueRepository interface {
	Create(issue *entity.Issue) error
	CreateLine(line *entity.IssueLine) error
	GetByID(id string) (*entity.Issue, error)
	GetLines(issueID string) ([]*entity.IssueLine, error)
	UpdateStatus(id string, status entity.DocumentStatus) error
	List(filter IssueFilter) ([]*entity.Issue, error)
	// ListPendingToBill lista ventas/consignaciones posteadas sin facturar.
	// clientID vacío = todos los clientes.
	ListPendingToBill(clientID string) ([]*PendingIssueRow, error)
	// BagContents lista lo que está actualmente en maletas.
	// bagID vacío = todas las maletas.
	BagContents(bagID string) ([]*BagContentRow, error)
}
