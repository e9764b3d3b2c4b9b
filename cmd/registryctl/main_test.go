package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Mostofa-Abedin/trello/internal/infrastructure/db/sqlstore"
	"github.com/Mostofa-Abedin/trello/internal/pkg/config"
)

// testConfig points at a shared in-memory SQLite database. The returned
// handle keeps it alive between commands, each of which opens and closes
// its own connection.
func testConfig(t *testing.T) (*config.Config, *gorm.DB) {
	t.Helper()
	cfg := &config.Config{
		BcryptCost: 4,
		Database: config.DatabaseConfig{
			URL: "file:" + t.Name() + "?mode=memory&cache=shared",
		},
	}

	db, err := sqlstore.Open(context.Background(), sqlstore.Config{DSN: cfg.Database.URL}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlstore.Close(db) })
	return cfg, db
}

func TestRun_Usage(t *testing.T) {
	cfg, _ := testConfig(t)
	for _, args := range [][]string{nil, {"db"}, {"db", "explode"}, {"cache", "seed"}} {
		err := run(context.Background(), cfg, args, &bytes.Buffer{}, zerolog.Nop())
		require.True(t, errors.Is(err, errUsage), "args %v: %v", args, err)
	}
}

func TestRun_CreateSeedDrop(t *testing.T) {
	cfg, db := testConfig(t)
	ctx := context.Background()
	var out bytes.Buffer

	require.NoError(t, run(ctx, cfg, []string{"db", "create"}, &out, zerolog.Nop()))
	require.True(t, db.Migrator().HasTable("users"))

	require.NoError(t, run(ctx, cfg, []string{"db", "seed"}, &out, zerolog.Nop()))
	require.NoError(t, run(ctx, cfg, []string{"db", "seed"}, &out, zerolog.Nop()))

	text := out.String()
	require.Contains(t, text, "schema created")
	require.Equal(t, 3, strings.Count(text, "created "), text)
	require.Equal(t, 3, strings.Count(text, "skipped "), text)
	require.Contains(t, text, "created admin@example.com (id 1, admin true)")
	require.Contains(t, text, "created alice@example.com (id 2, admin false)")
	require.Contains(t, text, `unique constraint violated on column "email"`)

	users, err := sqlstore.NewUserRepository(db).List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.NotEqual(t, "admin-password", *users[0].PasswordHash)

	require.NoError(t, run(ctx, cfg, []string{"db", "drop"}, &out, zerolog.Nop()))
	require.False(t, db.Migrator().HasTable("users"))
	require.Contains(t, out.String(), "schema dropped")
}
