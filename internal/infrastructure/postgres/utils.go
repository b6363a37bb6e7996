package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/probaar-api/internal/domain"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx; los repositorios aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// translateWriteError convierte errores de escritura en errores de dominio:
// 23505 (unique_violation) -> *domain.ConflictError; 23503 (foreign_key_violation) -> domain.ErrConflict.
func translateWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &domain.ConflictError{Constraint: pgErr.ConstraintName}
		case "23503":
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, domain.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func timeParam(t *entity.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}

func timeValue(t pgtype.Time) *entity.TimeOfDay {
	if !t.Valid {
		return nil
	}
	v := entity.TimeOfDayFromMicroseconds(t.Microseconds)
	return &v
}

// exists ejecuta un SELECT EXISTS con los argumentos dados.
func exists(ctx context.Context, q Querier, op, query string, args ...any) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// checkAffected convierte un UPDATE/DELETE sin filas afectadas en domain.ErrNotFound.
func checkAffected(tag pgconn.CommandTag, resource string, id any) error {
	if tag.RowsAffected() == 0 {
		return domain.NotFound(resource, id)
	}
	return nil
}

var timeNow = time.Now
