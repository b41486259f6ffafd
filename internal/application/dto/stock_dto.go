package dto

import (
	"github.com/shopspring/decimal"
	"github.com/suminventa/kardex-api/internal/domain/entity"
)

// MovementResponse asiento del kardex en respuestas.
type MovementResponse struct {
	ID             string           `json:"id"`
	Date           string           `json:"date"`
	Type           string           `json:"type"`
	DocumentType   string           `json:"document_type"`
	DocumentNumber string           `json:"document_number"`
	ProductID      string           `json:"product_id"`
	LotID          string           `json:"lot_id"`
	Quantity       int64            `json:"quantity"`
	BalanceBefore  int64            `json:"balance_before"`
	BalanceAfter   int64            `json:"balance_after"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	CreatedBy      string           `json:"created_by"`
	Notes          string           `json:"notes,omitempty"`
}

// FromMovement convierte la entidad a respuesta.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		Date:           m.Date.Format("2006-01-02T15:04:05Z07:00"),
		Type:           string(m.Type),
		DocumentType:   string(m.DocumentType),
		DocumentNumber: m.DocumentNumber,
		ProductID:      m.ProductID,
		LotID:          m.LotID,
		Quantity:       m.Quantity,
		BalanceBefore:  m.BalanceBefore,
		BalanceAfter:   m.BalanceAfter,
		UnitCost:       m.UnitCost,
		CreatedBy:      m.CreatedBy,
		Notes:          m.Notes,
	}
}

// FromMovements convierte una lista de asientos.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// LotResponse lote en respuestas.
type LotResponse struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	SupplierID     string  `json:"supplier_id"`
	BatchCode      *string `json:"batch_code,omitempty"`
	ExpirationDate string  `json:"expiration_date,omitempty"`
	InitialQty     int64   `json:"initial_quantity"`
	CurrentQty     int64   `json:"current_quantity"`
	State          string  `json:"state"`
}

// FromLot convierte la entidad a respuesta.
func FromLot(l *entity.Lot) LotResponse {
	resp := LotResponse{
		ID:         l.ID,
		ProductID:  l.ProductID,
		SupplierID: l.SupplierID,
		BatchCode:  l.BatchCode,
		InitialQty: l.InitialQty,
		CurrentQty: l.CurrentQty,
		State:      string(l.State),
	}
	if l.ExpirationDate != nil {
		resp.ExpirationDate = l.ExpirationDate.Format(dateLayout)
	}
	return resp
}
