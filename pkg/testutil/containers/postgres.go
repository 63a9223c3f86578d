//go:build integration

package containers

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/config"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/postgres"
)

// PostgresContainer wraps a migrated PostgreSQL instance.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	URL       string
	DB        *sql.DB
}

// NewPostgresContainer starts PostgreSQL, opens it through driver ("pgx" or
// "postgres") and applies every migration.
func NewPostgresContainer(t *testing.T, driver string) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("compliance_test"),
		tcpostgres.WithUsername("compliance"),
		tcpostgres.WithPassword("compliance"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := postgres.Open(ctx, config.DatabaseConfig{URL: url, Driver: driver, MaxOpenConns: 10, MaxIdleConns: 2})
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.Migrate(ctx, db, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return &PostgresContainer{Container: container, URL: url, DB: db}
}

// Truncate empties the given tables and resets their sequences.
func (p *PostgresContainer) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := p.DB.Exec("TRUNCATE " + table + " RESTART IDENTITY CASCADE"); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}
