package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/suminventa/kardex-api/internal/application/dto"
	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/application/stock"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// InventoryHandler maneja ajustes, transferencias, kardex y lotes (protegido).
type InventoryHandler struct {
	adjustment *inventory.AdjustmentUseCase
	transfer   *inventory.TransferUseCase
	queries    *stock.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjustment *inventory.AdjustmentUseCase, transfer *inventory.TransferUseCase, queries *stock.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{adjustment: adjustment, transfer: transfer, queries: queries}
}

// Adjust godoc
// @Summary      Ajustar cantidad de un lote
// @Description  Fija la cantidad absoluta del lote (conteo físico, daño, vencimiento). El delta queda en el kardex.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "lot_id, new_quantity, reason"
// @Success      201   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var req dto.AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.adjustment.Adjust(c.Context(), inventory.AdjustInput{
		LotID:       req.LotID,
		NewQuantity: req.NewQuantity,
		Reason:      req.Reason,
		Notes:       req.Notes,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AdjustResponse{
		Number:   res.Number,
		Delta:    res.Delta,
		NewState: string(res.NewState),
	})
}

// Transfer godoc
// @Summary      Transferir cantidad entre lotes del mismo producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "source_lot_id, dest_lot_id, quantity"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.transfer.Transfer(c.Context(), inventory.TransferInput{
		SourceLotID: req.SourceLotID,
		DestLotID:   req.DestLotID,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DocumentResponse{Number: res.Number})
}

// Kardex godoc
// @Summary      Kardex de un producto
// @Description  Asientos del producto, más reciente primero, con filtros opcionales.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD"
// @Param        to     query  string  false  "YYYY-MM-DD"
// @Param        type   query  string  false  "receipt | issue | adjustment | ..."
// @Param        limit  query  int     false  "máximo de asientos (tope 500)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/kardex/{productId} [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	filter := repository.KardexFilter{
		Type:  entity.MovementType(c.Query("type")),
		Limit: c.QueryInt("limit"),
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
	list, err := h.queries.Kardex(c.Context(), c.Params("productId"), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": dto.FromMovements(list)})
}

// LotDetail godoc
// @Summary      Detalle de un lote
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [get]
func (h *InventoryHandler) LotDetail(c *fiber.Ctx) error {
	lot, err := h.queries.LotDetail(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromLot(lot))
}

// LotLedger godoc
// @Summary      Asientos de un lote en orden cronológico
// @Description  Permite verificar que la cantidad actual del lote coincide con el ledger.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/ledger [get]
func (h *InventoryHandler) LotLedger(c *fiber.Ctx) error {
	list, err := h.queries.LotLedger(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": dto.FromMovements(list)})
}
