package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/suminventa/kardex-api/internal/application/dto"
	"github.com/suminventa/kardex-api/internal/application/inventory"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// IssueHandler maneja las peticiones HTTP de salidas de mercancía (protegido).
type IssueHandler struct {
	issuance *inventory.IssuanceUseCase
	docs     *inventory.DocumentQueryUseCase
}

// NewIssueHandler construye el handler.
func NewIssueHandler(issuance *inventory.IssuanceUseCase, docs *inventory.DocumentQueryUseCase) *IssueHandler {
	return &IssueHandler{issuance: issuance, docs: docs}
}

// Create godoc
// @Summary      Postear salida de mercancía
// @Description  Cada línea descuenta de UN solo lote, elegido por vencimiento más próximo. Numeración SAL-NNNNNN.
// @Tags         issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueRequest  true  "kind, lines; client_id para consignaciones, bag_id para maletas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/issues [post]
func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var req dto.IssueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in, err := req.ToInput(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.issuance.Issue(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DocumentResponse{ID: res.ID, Number: res.Number})
}

// Void godoc
// @Summary      Anular salida
// @Description  Restaura en cada lote la cantidad que salió. Falla si la salida ya fue facturada.
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/issues/{id}/void [post]
func (h *IssueHandler) Void(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.issuance.VoidIssue(c.Context(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "salida anulada"})
}

// GetByID godoc
// @Summary      Detalle de salida con líneas
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IssueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issues/{id} [get]
func (h *IssueHandler) GetByID(c *fiber.Ctx) error {
	issue, lines, err := h.docs.GetIssue(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromIssue(issue, lines))
}

// List godoc
// @Summary      Listar salidas
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Param        kind       query  string  false  "sale | consignment | bag_transfer | donation | sample"
// @Param        client_id  query  string  false  "Filtrar por cliente"
// @Param        bag_id     query  string  false  "Filtrar por maleta"
// @Param        status     query  string  false  "posted | voided"
// @Success      200  {array}  dto.IssueResponse
// @Router       /api/issues [get]
func (h *IssueHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	filter := repository.IssueFilter{
		DocumentFilter: repository.DocumentFilter{
			Status: entity.DocumentStatus(c.Query("status")),
			Limit:  page.Limit,
			Offset: page.Offset,
		},
		Kind:     entity.IssueKind(c.Query("kind")),
		ClientID: c.Query("client_id"),
		BagID:    c.Query("bag_id"),
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
	list, err := h.docs.ListIssues(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.IssueResponse, 0, len(list))
	for _, is := range list {
		out = append(out, dto.FromIssue(is, nil))
	}
	return c.JSON(fiber.Map{"total": len(out), "issues": out})
}
