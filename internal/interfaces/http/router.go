package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Receiving  *inventory.ReceivingUseCase
	Issuance   *inventory.IssuanceUseCase
	Adjustment *inventory.AdjustmentUseCase
	Transfer   *inventory.TransferUseCase
	Documents  *inventory.DocumentQueryUseCase
	Queries    *stock.QueryUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todas las rutas de inventario
// requieren Bearer Token; postear y anular exigen además rol de bodega.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	posting := RequireRole("admin", "bodeguero")

	// Entradas (protegido)
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.Receiving, deps.Documents)
	receipts.Post("/", posting, receiptHandler.Create)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Post("/:id/void", posting, receiptHandler.Void)

	// Salidas (protegido)
	issues := protected.Group("/issues")
	issueHandler := NewIssueHandler(deps.Issuance, deps.Documents)
	issues.Post("/", posting, issueHandler.Create)
	issues.Get("/", issueHandler.List)
	issues.Get("/:id", issueHandler.GetByID)
	issues.Post("/:id/void", posting, issueHandler.Void)

	// Ajustes, transferencias y kardex (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Adjustment, deps.Transfer, deps.Queries)
	invGroup.Post("/adjustments", posting, inventoryHandler.Adjust)
	invGroup.Post("/transfers", posting, inventoryHandler.Transfer)
	invGroup.Get("/kardex/:productId", inventoryHandler.Kardex)

	// Lotes (protegido)
	lots := protected.Group("/lots")
	lots.Get("/:id", inventoryHandler.LotDetail)
	lots.Get("/:id/ledger", inventoryHandler.LotLedger)

	// Stock y reportes (protegido)
	stockHandler := NewStockHandler(deps.Queries)
	stockGroup := protected.Group("/stock")
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/expiring", stockHandler.ExpiringSoon)
	stockGroup.Get("/summary", stockHandler.Summary)
	stockGroup.Get("/:productId", stockHandler.Available)

	reports := protected.Group("/reports")
	reports.Get("/pending-to-bill", stockHandler.PendingToBill)
	reports.Get("/bags", stockHandler.BagContents)
}
