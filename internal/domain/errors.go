package domain

import (
	"fmt"
	"strings"
)

// Errores tipados del motor de inventario. Los handlers HTTP y los tests
// los distinguen con errors.As; cada uno carga los datos que el caller
// necesita para diagnosticar sin volver a consultar la BD.

// LineError describe un problema de validación en una línea de documento.
type LineError struct {
	Line    int    `json:"line"`    // índice de la línea (base 1)
	Field   string `json:"field"`   // campo ofensor (batch_code, expiration_date, quantity...)
	Message string `json:"message"` // descripción en lenguaje de negocio
}

// ValidationError agrupa TODOS los errores de validación de una petición,
// no solo el primero. Lines puede estar vacío para errores de cabecera.
type ValidationError struct {
	Message string
	Lines   []LineError
}

func (e *ValidationError) Error() string {
	if len(e.Lines) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Lines))
	for _, le := range e.Lines {
		parts = append(parts, fmt.Sprintf("línea %d: %s (%s)", le.Line, le.Message, le.Field))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// NewValidationError crea un error de validación de cabecera (sin líneas).
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError indica que un recurso referenciado por ID no existe.
type NotFoundError struct {
	Resource string // "producto", "lote", "entrada", "salida"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, e.ID)
}

// ConflictError indica una colisión de unicidad (p.ej. número de documento
// duplicado detectado por el constraint de respaldo).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// InsufficientStockError indica que ningún lote elegible puede cubrir por sí
// solo la cantidad solicitada (política de lote único, sin fraccionamiento).
// BestAvailable es la mayor cantidad disponible en un solo lote, para
// diagnóstico: puede existir stock suficiente sumando lotes y aun así fallar.
type InsufficientStockError struct {
	ProductID     string
	Requested     int64
	BestAvailable int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s: se pidió %d y el mejor lote disponible tiene %d",
		e.ProductID, e.Requested, e.BestAvailable)
}

// BusinessRuleError indica una violación de regla de negocio: anular un
// documento ya anulado o facturado, transferir entre productos distintos,
// cantidad no positiva, etc.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

// NewBusinessRuleError construye el error con formato estilo fmt.Sprintf.
func NewBusinessRuleError(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

// InfrastructureError envuelve fallas de almacenamiento o transporte.
// El motor no reintenta: la operación completa se aborta y el caller decide.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }
