package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation en la tabla de códigos de error de PostgreSQL.
const uniqueViolationCode = "23505"

// isUniqueViolation reconoce la violación de constraint único con la que el
// índice de números de documento respalda al numerador.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), uniqueViolationCode)
}
