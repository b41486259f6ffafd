package postgres

import (
	"context"
	"fmt"

	"github.com/suminventa/kardex-api/internal/domain/entity"
	"github.com/suminventa/kardex-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo numerador documental sobre PostgreSQL. Una fila contadora por
// serie; el upsert incrementa y devuelve en una sola sentencia, así que el
// bloqueo de fila de la tx garantiza números únicos y consecutivos.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el numerador. Pasar la tx del posteo: el
// número debe confirmarse o revertirse junto con el documento.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el contador de la serie.
func (r *SequenceRepo) Next(series entity.DocumentSeries) (int64, error) {
	query := `
		INSERT INTO document_sequences (series, last_number)
		VALUES ($1, 1)
		ON CONFLICT (series)
		DO UPDATE SET last_number = document_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, series).Scan(&n); err != nil {
		return 0, fmt.Errorf("next document number (%s): %w", series, err)
	}
	return n, nil
}
