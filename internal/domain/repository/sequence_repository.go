package repository

import "github.com/suminventa/kardex-api/internal/domain/entity"

// SequenceRepository define el puerto del numerador documental. Next debe
// ejecutarse dentro de la MISMA transacción que persiste el documento, con
// incremento atómico sobre la fila contadora de la serie: dos posteos
// concurrentes jamás obtienen el mismo número.
type SequenceRepository interface {
	Next(series entity.DocumentSeries) (int64, error)
}
