package sqlstore

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB returns a migrated in-memory SQLite database private to t.
func openTestDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared"

	db, err := Open(context.Background(), Config{DSN: dsn}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, CreateSchema(context.Background(), db, dsn))
	return db, dsn
}

func TestDialectOf(t *testing.T) {
	cases := map[string]Dialect{
		"postgres://u:p@localhost:5432/db":                 DialectPostgres,
		"POSTGRESQL://u:p@localhost:5432/db":               DialectPostgres,
		"host=db user=app password=x dbname=registry":      DialectPostgres,
		"dbname=registry sslmode=disable":                  DialectPostgres,
		"file:registry.db":                                 DialectSQLite,
		"file:registry.db?_foreign_keys=1&_busy_timeout=5": DialectSQLite,
		"registry.db":                                      DialectSQLite,
		":memory:":                                         DialectSQLite,
	}
	for dsn, want := range cases {
		require.Equal(t, want, DialectOf(dsn), dsn)
	}
}

func TestOpen_SQLiteSingleConnection(t *testing.T) {
	db, _ := openTestDB(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, Ping(context.Background(), db))
}

func TestSchema_CreateIsIdempotentAndDropRemovesTable(t *testing.T) {
	db, dsn := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, CreateSchema(ctx, db, dsn))
	require.True(t, db.Migrator().HasTable("users"))

	require.NoError(t, DropSchema(ctx, db, dsn))
	require.False(t, db.Migrator().HasTable("users"))
}

func TestEmbeddedMigrations(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_create_users.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(up), "email TEXT NOT NULL")
	require.Contains(t, string(up), "password TEXT NOT NULL")
	require.Contains(t, string(up), "users_email_key")

	down, err := migrationsFS.ReadFile("migrations/000001_create_users.down.sql")
	require.NoError(t, err)
	require.Contains(t, string(down), "DROP TABLE")
}

type fakeMigrator struct {
	upErr, downErr error
	ups, downs     int
}

func (f *fakeMigrator) Up() error   { f.ups++; return f.upErr }
func (f *fakeMigrator) Down() error { f.downs++; return f.downErr }

func TestSchema_PostgresRunsMigrations(t *testing.T) {
	fake := &fakeMigrator{}
	closed := 0

	orig := newMigrator
	newMigrator = func(string) (migrator, func() error, error) {
		return fake, func() error { closed++; return nil }, nil
	}
	t.Cleanup(func() { newMigrator = orig })

	dsn := "postgres://u:p@localhost:5432/db"
	require.NoError(t, CreateSchema(context.Background(), nil, dsn))
	require.NoError(t, DropSchema(context.Background(), nil, dsn))

	require.Equal(t, 1, fake.ups)
	require.Equal(t, 1, fake.downs)
	require.Equal(t, 2, closed)
}
