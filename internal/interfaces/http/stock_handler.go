package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/suminventa/kardex-api/internal/application/stock"
)

// StockHandler consultas de stock, alertas y reportes (protegido).
type StockHandler struct {
	queries *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(queries *stock.QueryUseCase) *StockHandler {
	return &StockHandler{queries: queries}
}

// Available godoc
// @Summary      Stock disponible de un producto
// @Description  Suma de existencias de los lotes disponibles. Puede servirse desde caché (TTL corto).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/{productId} [get]
func (h *StockHandler) Available(c *fiber.Ctx) error {
	productID := c.Params("productId")
	qty, err := h.queries.AvailableStock(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": productID, "available": qty})
}

// LowStock godoc
// @Summary      Productos en o bajo su stock mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  repository.LowStockRow
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.queries.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}

// ExpiringSoon godoc
// @Summary      Lotes que vencen dentro de la ventana pedida
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "ventana en días (default 30)"
// @Success      200  {array}  repository.ExpiringLotRow
// @Router       /api/stock/expiring [get]
func (h *StockHandler) ExpiringSoon(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	list, err := h.queries.ExpiringSoon(c.Context(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"days": days, "total": len(list), "lots": list})
}

// Summary godoc
// @Summary      Resumen global de inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  repository.StockSummaryRow
// @Router       /api/stock/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.queries.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// PendingToBill godoc
// @Summary      Ventas y consignaciones sin facturar
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        client_id  query  string  false  "Filtrar por cliente"
// @Success      200  {array}  repository.PendingIssueRow
// @Router       /api/reports/pending-to-bill [get]
func (h *StockHandler) PendingToBill(c *fiber.Ctx) error {
	list, err := h.queries.PendingToBill(c.Context(), c.Query("client_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "issues": list})
}

// BagContents godoc
// @Summary      Mercancía actualmente en maletas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        bag_id  query  string  false  "Filtrar por maleta"
// @Success      200  {array}  repository.BagContentRow
// @Router       /api/reports/bags [get]
func (h *StockHandler) BagContents(c *fiber.Ctx) error {
	list, err := h.queries.BagContents(c.Context(), c.Query("bag_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "contents": list})
}
