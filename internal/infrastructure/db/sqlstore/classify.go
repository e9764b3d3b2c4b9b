package sqlstore

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
)

// classify converts an engine error into a constraint violation, or returns
// nil when err is not a NOT NULL or UNIQUE rejection.
func classify(err error) *domain.ConstraintViolation {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return classifySQLite(liteErr)
	}

	return nil
}

func classifyPostgres(pgErr *pgconn.PgError) *domain.ConstraintViolation {
	switch pgErr.Code {
	case pgerrcode.NotNullViolation:
		return &domain.ConstraintViolation{
			Kind:  domain.ViolationNotNull,
			Field: pgErr.ColumnName,
			Err:   pgErr,
		}
	case pgerrcode.UniqueViolation:
		return &domain.ConstraintViolation{
			Kind:  domain.ViolationUnique,
			Field: uniqueColumn(pgErr),
			Err:   pgErr,
		}
	}
	return nil
}

// uniqueColumn recovers the column of a unique violation. PostgreSQL does not
// fill ColumnName for 23505, so the "Key (col)=(value)" detail is parsed,
// falling back to the <table>_<column>_key constraint naming convention.
func uniqueColumn(pgErr *pgconn.PgError) string {
	if rest, ok := strings.CutPrefix(pgErr.Detail, "Key ("); ok {
		if col, _, found := strings.Cut(rest, ")"); found {
			return col
		}
	}
	name := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	if pgErr.TableName != "" {
		name = strings.TrimPrefix(name, pgErr.TableName+"_")
	}
	return name
}

func classifySQLite(liteErr sqlite3.Error) *domain.ConstraintViolation {
	switch liteErr.ExtendedCode {
	case sqlite3.ErrConstraintNotNull:
		return &domain.ConstraintViolation{
			Kind:  domain.ViolationNotNull,
			Field: sqliteColumn(liteErr.Error()),
			Err:   liteErr,
		}
	case sqlite3.ErrConstraintUnique:
		return &domain.ConstraintViolation{
			Kind:  domain.ViolationUnique,
			Field: sqliteColumn(liteErr.Error()),
			Err:   liteErr,
		}
	}
	return nil
}

// sqliteColumn extracts "email" from messages such as
// "NOT NULL constraint failed: users.email". For composite unique keys only
// the first column is returned.
func sqliteColumn(msg string) string {
	_, qualified, ok := strings.Cut(msg, "constraint failed: ")
	if !ok {
		return ""
	}
	qualified, _, _ = strings.Cut(qualified, ",")
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return strings.TrimSpace(qualified[i+1:])
	}
	return strings.TrimSpace(qualified)
}
