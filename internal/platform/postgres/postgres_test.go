package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/config"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestInt64ArrayRoundTrip(t *testing.T) {
	stages := []id.StageID{3, 1, 2}
	arr := Int64Array(stages)
	assert.Equal(t, pq.Int64Array{3, 1, 2}, arr)
	assert.Equal(t, stages, FromInt64Array[id.StageID](arr))
	assert.Empty(t, FromInt64Array[id.RoleID](nil))
}

func TestOpen_NoURLMeansNoDatabase(t *testing.T) {
	db, err := Open(context.Background(), config.DatabaseConfig{})
	require.NoError(t, err)
	assert.Nil(t, db)
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{URL: "postgres://localhost/x", Driver: "mysql"})
	require.Error(t, err)
}

func TestMigrationsAreOrdered(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
	for _, m := range migrations {
		assert.NotEmpty(t, m.SQL, m.Version)
		assert.Len(t, m.Checksum, 64)
	}
}

func TestStatements(t *testing.T) {
	got := statements("CREATE TABLE a (id INT);\n\n-- note\nCREATE INDEX i ON a (id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "-- note\nCREATE INDEX i ON a (id)"}, got)
}
