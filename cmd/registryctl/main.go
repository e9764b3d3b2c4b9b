// Command registryctl manages the registry database during development.
//
//	registryctl db create   apply the users schema
//	registryctl db drop     remove the users schema
//	registryctl db seed     insert an admin and two regular users
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
	"github.com/Mostofa-Abedin/trello/internal/core/ports"
	"github.com/Mostofa-Abedin/trello/internal/infrastructure/crypto"
	"github.com/Mostofa-Abedin/trello/internal/infrastructure/db/sqlstore"
	"github.com/Mostofa-Abedin/trello/internal/pkg/config"
	"github.com/Mostofa-Abedin/trello/pkg/logger"
)

const usage = "usage: registryctl db <create|drop|seed>"

var errUsage = errors.New(usage)

type seedUser struct {
	name, email, password string
	admin                 bool
}

var seedUsers = []seedUser{
	{name: "Admin", email: "admin@example.com", password: "admin-password", admin: true},
	{name: "Alice", email: "alice@example.com", password: "alice-password"},
	{name: "Bob", email: "bob@example.com", password: "bob-password"},
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "registryctl",
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
	})

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout, log); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error().Err(err).Msg("registryctl failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer, log zerolog.Logger) error {
	if len(args) != 2 || args[0] != "db" {
		return errUsage
	}

	var cmd func(context.Context, *gorm.DB, *config.Config, io.Writer) error
	switch args[1] {
	case "create":
		cmd = createSchema
	case "drop":
		cmd = dropSchema
	case "seed":
		cmd = seed
	default:
		return errUsage
	}

	db, err := sqlstore.Open(ctx, sqlstore.Config{DSN: cfg.Database.URL, MaxOpenConns: 1}, log)
	if err != nil {
		return err
	}
	defer func() { _ = sqlstore.Close(db) }()

	return cmd(ctx, db, cfg, out)
}

func createSchema(ctx context.Context, db *gorm.DB, cfg *config.Config, out io.Writer) error {
	if err := sqlstore.CreateSchema(ctx, db, cfg.Database.URL); err != nil {
		return err
	}
	fmt.Fprintln(out, "schema created")
	return nil
}

func dropSchema(ctx context.Context, db *gorm.DB, cfg *config.Config, out io.Writer) error {
	if err := sqlstore.DropSchema(ctx, db, cfg.Database.URL); err != nil {
		return err
	}
	fmt.Fprintln(out, "schema dropped")
	return nil
}

// seed inserts the fixture users one by one. Rows rejected by a constraint
// are reported and skipped; any other failure aborts.
func seed(ctx context.Context, db *gorm.DB, cfg *config.Config, out io.Writer) error {
	repo := sqlstore.NewUserRepository(db)
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	return seedWith(ctx, repo, hasher, out)
}

func seedWith(ctx context.Context, repo ports.UserRepository, hasher ports.PasswordHasher, out io.Writer) error {
	for _, su := range seedUsers {
		hash, err := hasher.Hash(su.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.email, err)
		}

		name, email := su.name, su.email
		created, err := repo.Create(ctx, &domain.User{
			Name:         &name,
			Email:        &email,
			PasswordHash: &hash,
			IsAdmin:      su.admin,
		})
		if err != nil {
			var violation *domain.ConstraintViolation
			if errors.As(err, &violation) {
				fmt.Fprintf(out, "skipped %s: %v\n", su.email, violation)
				continue
			}
			return err
		}
		fmt.Fprintf(out, "created %s (id %d, admin %t)\n", su.email, created.ID, created.IsAdmin)
	}
	return nil
}
