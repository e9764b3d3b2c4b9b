package sqlstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
)

func TestClassify_PostgresNotNull(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		TableName:  "users",
		ColumnName: "password",
	}

	v := classify(fmt.Errorf("insert: %w", pgErr))
	require.NotNil(t, v)
	require.Equal(t, domain.ViolationNotNull, v.Kind)
	require.Equal(t, "password", v.Field)
	require.True(t, errors.Is(v, pgErr))
}

func TestClassify_PostgresUniqueFromDetail(t *testing.T) {
	v := classify(&pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		TableName:      "users",
		ConstraintName: "something_else",
		Detail:         "Key (email)=(a@b.c) already exists.",
	})
	require.NotNil(t, v)
	require.Equal(t, domain.ViolationUnique, v.Kind)
	require.Equal(t, "email", v.Field)
}

func TestClassify_PostgresUniqueFromConstraintName(t *testing.T) {
	v := classify(&pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		TableName:      "users",
		ConstraintName: "users_email_key",
	})
	require.NotNil(t, v)
	require.Equal(t, "email", v.Field)
}

func TestClassify_Unrelated(t *testing.T) {
	require.Nil(t, classify(errors.New("boom")))
	require.Nil(t, classify(&pgconn.PgError{Code: pgerrcode.CheckViolation}))
	require.Nil(t, classify(nil))
}

func TestSQLiteColumn(t *testing.T) {
	cases := map[string]string{
		"NOT NULL constraint failed: users.email":    "email",
		"UNIQUE constraint failed: users.email":      "email",
		"UNIQUE constraint failed: users.a, users.b": "a",
		"NOT NULL constraint failed: password":       "password",
		"database is locked":                         "",
	}
	for msg, want := range cases {
		require.Equal(t, want, sqliteColumn(msg), msg)
	}
}
