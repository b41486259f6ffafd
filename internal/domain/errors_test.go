package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_AgrupaTodasLasLineas(t *testing.T) {
	err := &ValidationError{
		Message: "entrada inválida",
		Lines: []LineError{
			{Line: 1, Field: "quantity", Message: "la cantidad debe ser mayor a 0"},
			{Line: 3, Field: "expiration_date", Message: "fecha inválida"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "línea 1")
	assert.Contains(t, msg, "línea 3")
	assert.Contains(t, msg, "quantity")
}

func TestValidationError_SinLineasUsaSoloElMensaje(t *testing.T) {
	err := NewValidationError("el proveedor es requerido")
	assert.Equal(t, "el proveedor es requerido", err.Error())
}

func TestErroresTipados_SeDistinguenConErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("postear salida: %w", &InsufficientStockError{
		ProductID:     "P-001",
		Requested:     60,
		BestAvailable: 50,
	})

	var iserr *InsufficientStockError
	require.True(t, errors.As(wrapped, &iserr))
	assert.Equal(t, "P-001", iserr.ProductID)
	assert.EqualValues(t, 60, iserr.Requested)
	assert.EqualValues(t, 50, iserr.BestAvailable)

	var nferr *NotFoundError
	assert.False(t, errors.As(wrapped, &nferr))
}

func TestNotFoundError_MensajeConRecursoEID(t *testing.T) {
	err := &NotFoundError{Resource: "lote", ID: "L-404"}
	assert.Equal(t, "lote no encontrado: L-404", err.Error())
}

func TestBusinessRuleError_FormatoConArgumentos(t *testing.T) {
	err := NewBusinessRuleError("la salida %s ya fue anulada", "SAL-000007")
	assert.Equal(t, "la salida SAL-000007 ya fue anulada", err.Error())
}
