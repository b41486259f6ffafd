package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suminventa/kardex-api/internal/domain"
)

func TestReceiveRequest_ToInput_AcumulaTodasLasFechasInvalidas(t *testing.T) {
	req := ReceiveRequest{
		SupplierID: "S-001",
		Lines: []ReceiveLineRequest{
			{ProductID: "P-001", Quantity: 10, ExpirationDate: "31-12-2026"},
			{ProductID: "P-002", Quantity: 5, ExpirationDate: "2026/06/30"},
			{ProductID: "P-003", Quantity: 3, ExpirationDate: "2026-06-30"},
		},
	}

	_, err := req.ToInput("user-1")
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Lines, 2)
	assert.Equal(t, 1, verr.Lines[0].Line)
	assert.Equal(t, "expiration_date", verr.Lines[0].Field)
	assert.Equal(t, 2, verr.Lines[1].Line)
	assert.Contains(t, err.Error(), "línea 1")
	assert.Contains(t, err.Error(), "línea 2")
}

func TestReceiveRequest_ToInput_FechasValidasPasan(t *testing.T) {
	req := ReceiveRequest{
		SupplierID: "S-001",
		Date:       "2026-03-15",
		Lines: []ReceiveLineRequest{
			{ProductID: "P-001", Quantity: 10, ExpirationDate: "2027-01-31"},
			{ProductID: "P-002", Quantity: 5}, // sin vencimiento
		},
	}

	in, err := req.ToInput("user-1")
	require.NoError(t, err)
	require.Len(t, in.Lines, 2)
	require.NotNil(t, in.Lines[0].ExpirationDate)
	assert.Equal(t, "2027-01-31", in.Lines[0].ExpirationDate.Format(dateLayout))
	assert.Nil(t, in.Lines[1].ExpirationDate)
	assert.Equal(t, "2026-03-15", in.Date.Format(dateLayout))
}

func TestIssueRequest_ToInput_FechaDeCabeceraInvalida(t *testing.T) {
	req := IssueRequest{
		Kind: "sale",
		Date: "15/03/2026",
		Lines: []IssueLineRequest{
			{ProductID: "P-001", Quantity: 2},
		},
	}

	_, err := req.ToInput("user-1")
	require.Error(t, err)

	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}
