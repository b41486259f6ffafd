package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suminventa/kardex-api/internal/application/stock"
	"github.com/suminventa/kardex-api/internal/domain"
	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

// capturaMovRepo registra el filtro con que se consulta el kardex.
type capturaMovRepo struct {
	lastFilter repository.KardexFilter
}

func (r *capturaMovRepo) Create(_ *entity.Movement) error { return nil }

func (r *capturaMovRepo) ListByProduct(_ string, filter repository.KardexFilter) ([]*entity.Movement, error) {
	r.lastFilter = filter
	return nil, nil
}

func (r *capturaMovRepo) ListByLot(_ string) ([]*entity.Movement, error) { return nil, nil }

func TestKardex_LimiteDefectoYTope(t *testing.T) {
	movRepo := &capturaMovRepo{}
	uc := stock.NewQueryUseCase(nil, movRepo, nil, nil, nil)

	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"cero usa el defecto", 0, 50},
		{"negativo usa el defecto", -5, 50},
		{"dentro del rango pasa igual", 200, 200},
		{"sobre el tope recorta a 500", 9999, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Kardex(context.Background(), "p1", repository.KardexFilter{Limit: tc.limit})
			require.NoError(t, err)
			assert.Equal(t, tc.want, movRepo.lastFilter.Limit)
		})
	}
}

func TestKardex_ProductoYTipoRequeridosValidos(t *testing.T) {
	movRepo := &capturaMovRepo{}
	uc := stock.NewQueryUseCase(nil, movRepo, nil, nil, nil)

	_, err := uc.Kardex(context.Background(), "", repository.KardexFilter{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = uc.Kardex(context.Background(), "p1", repository.KardexFilter{Type: "telepathy"})
	require.ErrorAs(t, err, &verr)
}
