package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ReceiveLineRequest línea de entrada en el body.
type ReceiveLineRequest struct {
	ProductID      string          `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	BatchCode      string          `json:"batch_code,omitempty"`
	ExpirationDate string          `json:"expiration_date,omitempty"` // YYYY-MM-DD
}

// ReceiveRequest body para POST /api/receipts.
type ReceiveRequest struct {
	SupplierID string               `json:"supplier_id"`
	DocType    string               `json:"doc_type,omitempty"`
	DocRef     string               `json:"doc_ref,omitempty"`
	Date       string               `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Notes      string               `json:"notes,omitempty"`
	Lines      []ReceiveLineRequest `json:"lines"`
}

// ToInput convierte el request al input del caso de uso. Las fechas vienen
// como YYYY-MM-DD; las mal formadas se acumulan todas en un ValidationError
// con su número de línea, no solo la primera.
func (r *ReceiveRequest) ToInput(actorID string) (inventory.ReceiveInput, error) {
	date, err := parseDateOrToday(r.Date)
	if err != nil {
		return inventory.ReceiveInput{}, domain.NewValidationError("date: " + err.Error())
	}
	in := inventory.ReceiveInput{
		SupplierID: r.SupplierID,
		DocType:    r.DocType,
		DocRef:     r.DocRef,
		Date:       date,
		Notes:      r.Notes,
		ActorID:    actorID,
	}
	var lineErrs []domain.LineError
	for i, line := range r.Lines {
		var exp *time.Time
		if line.ExpirationDate != "" {
			t, err := time.Parse(dateLayout, line.ExpirationDate)
			if err != nil {
				lineErrs = append(lineErrs, domain.LineError{
					Line:    i + 1,
					Field:   "expiration_date",
					Message: fmt.Sprintf("fecha inválida (%s), formato YYYY-MM-DD", line.ExpirationDate),
				})
				continue
			}
			exp = &t
		}
		in.Lines = append(in.Lines, inventory.ReceiveLineInput{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			BatchCode:      line.BatchCode,
			ExpirationDate: exp,
		})
	}
	if len(lineErrs) > 0 {
		return inventory.ReceiveInput{}, &domain.ValidationError{Message: "entrada inválida", Lines: lineErrs}
	}
	return in, nil
}

// IssueLineRequest línea de salida en el body.
type IssueLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"` // cero = precio de venta del producto
	BatchCode string          `json:"batch_code,omitempty"` // restringe la selección de lote
}

// IssueRequest body para POST /api/issues.
type IssueRequest struct {
	Kind     string             `json:"kind"` // sale | consignment | bag_transfer | donation | sample
	ClientID string             `json:"client_id,omitempty"`
	BagID    string             `json:"bag_id,omitempty"`
	Date     string             `json:"date,omitempty"`
	Notes    string             `json:"notes,omitempty"`
	Lines    []IssueLineRequest `json:"lines"`
}

// ToInput convierte el request al input del caso de uso.
func (r *IssueRequest) ToInput(actorID string) (inventory.IssueInput, error) {
	date, err := parseDateOrToday(r.Date)
	if err != nil {
		return inventory.IssueInput{}, domain.NewValidationError("date: " + err.Error())
	}
	in := inventory.IssueInput{
		Kind:     entity.IssueKind(r.Kind),
		ClientID: r.ClientID,
		BagID:    r.BagID,
		Date:     date,
		Notes:    r.Notes,
		ActorID:  actorID,
	}
	for _, line := range r.Lines {
		in.Lines = append(in.Lines, inventory.IssueLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			BatchCode: line.BatchCode,
		})
	}
	return in, nil
}

// AdjustRequest body para POST /api/inventory/adjustments.
type AdjustRequest struct {
	LotID       string `json:"lot_id"`
	NewQuantity int64  `json:"new_quantity"` // cantidad absoluta en mano, no delta
	Reason      string `json:"reason"`
	Notes       string `json:"notes,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	SourceLotID string `json:"source_lot_id"`
	DestLotID   string `json:"dest_lot_id"`
	Quantity    int64  `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// DocumentResponse documento creado (entrada o salida).
type DocumentResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Total  string `json:"total,omitempty"`
}

// AdjustResponse resultado de un ajuste.
type AdjustResponse struct {
	Number   string `json:"number"`
	Delta    int64  `json:"delta"`
	NewState string `json:"new_state"`
}

// ReceiptResponse entrada con líneas para GET /api/receipts/:id.
type ReceiptResponse struct {
	ID         string                `json:"id"`
	Number     string                `json:"number"`
	SupplierID string                `json:"supplier_id"`
	DocType    string                `json:"doc_type,omitempty"`
	DocRef     string                `json:"doc_ref,omitempty"`
	Date       string                `json:"date"`
	Status     string                `json:"status"`
	Total      decimal.Decimal       `json:"total"`
	Notes      string                `json:"notes,omitempty"`
	CreatedBy  string                `json:"created_by"`
	Lines      []ReceiptLineResponse `json:"lines,omitempty"`
}

// ReceiptLineResponse línea de entrada en respuestas.
type ReceiptLineResponse struct {
	ProductID      string          `json:"product_id"`
	LotID          string          `json:"lot_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	BatchCode      *string         `json:"batch_code,omitempty"`
	ExpirationDate string          `json:"expiration_date,omitempty"`
}

// FromReceipt arma la respuesta desde la entidad y sus líneas.
func FromReceipt(r *entity.Receipt, lines []*entity.ReceiptLine) ReceiptResponse {
	resp := ReceiptResponse{
		ID:         r.ID,
		Number:     r.Number,
		SupplierID: r.SupplierID,
		DocType:    r.DocType,
		DocRef:     r.DocRef,
		Date:       r.Date.Format(dateLayout),
		Status:     string(r.Status),
		Total:      r.Total,
		Notes:      r.Notes,
		CreatedBy:  r.CreatedBy,
	}
	for _, l := range lines {
		lr := ReceiptLineResponse{
			ProductID: l.ProductID,
			LotID:     l.LotID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			BatchCode: l.BatchCode,
		}
		if l.ExpirationDate != nil {
			lr.ExpirationDate = l.ExpirationDate.Format(dateLayout)
		}
		resp.Lines = append(resp.Lines, lr)
	}
	return resp
}

// IssueResponse salida con líneas para GET /api/issues/:id.
type IssueResponse struct {
	ID        string              `json:"id"`
	Number    string              `json:"number"`
	Kind      string              `json:"kind"`
	ClientID  *string             `json:"client_id,omitempty"`
	BagID     *string             `json:"bag_id,omitempty"`
	Date      string              `json:"date"`
	Status    string              `json:"status"`
	Billed    bool                `json:"billed"`
	Notes     string              `json:"notes,omitempty"`
	CreatedBy string              `json:"created_by"`
	Lines     []IssueLineResponse `json:"lines,omitempty"`
}

// IssueLineResponse línea de salida en respuestas, con el snapshot del lote.
type IssueLineResponse struct {
	ProductID      string          `json:"product_id"`
	LotID          string          `json:"lot_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	BatchCode      *string         `json:"batch_code,omitempty"`
	ExpirationDate string          `json:"expiration_date,omitempty"`
}

// FromIssue arma la respuesta desde la entidad y sus líneas.
func FromIssue(is *entity.Issue, lines []*entity.IssueLine) IssueResponse {
	resp := IssueResponse{
		ID:        is.ID,
		Number:    is.Number,
		Kind:      string(is.Kind),
		ClientID:  is.ClientID,
		BagID:     is.BagID,
		Date:      is.Date.Format(dateLayout),
		Status:    string(is.Status),
		Billed:    is.Billed,
		Notes:     is.Notes,
		CreatedBy: is.CreatedBy,
	}
	for _, l := range lines {
		lr := IssueLineResponse{
			ProductID: l.ProductID,
			LotID:     l.LotID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			BatchCode: l.BatchCode,
		}
		if l.ExpirationDate != nil {
			lr.ExpirationDate = l.ExpirationDate.Format(dateLayout)
		}
		resp.Lines = append(resp.Lines, lr)
	}
	return resp
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida (%s), formato YYYY-MM-DD", s)
	}
	return t, nil
}
