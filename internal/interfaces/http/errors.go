package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/suminventa/kardex-api/internal/application/dto"
	"github.com/suminventa/kardex-api/internal/domain"
)

// respondError traduce los errores tipados del dominio a estatus HTTP:
// validación 400, no encontrado 404, conflicto y stock insuficiente 409,
// regla de negocio 422, el resto 500.
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: verr.Message}
		for _, le := range verr.Lines {
			resp.Errors = append(resp.Errors, dto.LineErrorDTO{Line: le.Line, Field: le.Field, Message: le.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	var nferr *domain.NotFoundError
	if errors.As(err, &nferr) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: nferr.Error()})
	}
	var cerr *domain.ConflictError
	if errors.As(err, &cerr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: cerr.Message})
	}
	var iserr *domain.InsufficientStockError
	if errors.As(err, &iserr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: iserr.Error()})
	}
	var brerr *domain.BusinessRuleError
	if errors.As(err, &brerr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "BUSINESS_RULE", Message: brerr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
