package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/suminventa/kardex-api/internal/application/dto"
	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// ReceiptHandler maneja las peticiones HTTP de entradas de mercancía (protegido).
type ReceiptHandler struct {
	receiving *inventory.ReceivingUseCase
	docs      *inventory.DocumentQueryUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(receiving *inventory.ReceivingUseCase, docs *inventory.DocumentQueryUseCase) *ReceiptHandler {
	return &ReceiptHandler{receiving: receiving, docs: docs}
}

// Create godoc
// @Summary      Postear entrada de mercancía
// @Description  Cada línea crea un lote nuevo con su asiento de kardex. Numeración ENT-NNNNNN.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "supplier_id, lines"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var req dto.ReceiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in, err := req.ToInput(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.receiving.Receive(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DocumentResponse{ID: res.ID, Number: res.Number, Total: res.Total.String()})
}

// Void godoc
// @Summary      Anular entrada
// @Description  Revierte todos los lotes de la entrada. Falla si algún lote ya fue consumido.
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/void [post]
func (h *ReceiptHandler) Void(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.receiving.VoidReceipt(c.Context(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "entrada anulada"})
}

// GetByID godoc
// @Summary      Detalle de entrada con líneas
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	receipt, lines, err := h.docs.GetReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromReceipt(receipt, lines))
}

// List godoc
// @Summary      Listar entradas
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        status       query  string  false  "posted | voided"
// @Param        from         query  string  false  "YYYY-MM-DD"
// @Param        to           query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.ReceiptResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	filter := repository.ReceiptFilter{
		DocumentFilter: repository.DocumentFilter{
			Status: entity.DocumentStatus(c.Query("status")),
			Limit:  page.Limit,
			Offset: page.Offset,
		},
		SupplierID: c.Query("supplier_id"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = &t
		}
	}
	list, err := h.docs.ListReceipts(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.FromReceipt(r, nil))
	}
	return c.JSON(fiber.Map{"total": len(out), "receipts": out})
}
