package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stylelane-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isNoRows cubre la fila ausente y el id con formato inválido para una columna uuid (22P02).
func isNoRows(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// validIDs indica si todos los ids son uuid. Un id malformado no puede existir en la base;
// se descarta antes de consultar para no abortar la transacción en curso.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if uuid.Validate(id) != nil {
			return false
		}
	}
	return true
}

// insertErr traduce la violación de unicidad a domain.ErrConflict.
func insertErr(op, what string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s ya existe", domain.ErrConflict, what)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullable convierte "" en NULL para columnas uuid opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
