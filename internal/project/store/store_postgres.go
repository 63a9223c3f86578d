package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/postgres"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/tx"
)

// PostgresStore persists projects and representatives in PostgreSQL.
// Writes join the ambient transaction when the context carries one.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed project store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateProject(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (name, owner_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var projectID int64
	err := tx.ExecutorFor(ctx, s.db).
		QueryRowContext(ctx, query, p.Name, uuid.UUID(p.OwnerID), p.CreatedAt).
		Scan(&projectID)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	p.ID = id.ProjectID(projectID)
	return nil
}

func (s *PostgresStore) FindProject(ctx context.Context, projectID id.ProjectID) (*models.Project, error) {
	query := `SELECT id, name, owner_id, created_at FROM projects WHERE id = $1`
	var (
		p       models.Project
		rawID   int64
		ownerID uuid.UUID
	)
	err := tx.ExecutorFor(ctx, s.db).QueryRowContext(ctx, query, int64(projectID)).
		Scan(&rawID, &p.Name, &ownerID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	p.ID = id.ProjectID(rawID)
	p.OwnerID = id.UserID(ownerID)
	return &p, nil
}

func (s *PostgresStore) CreateRepresentative(ctx context.Context, r *models.Representative) error {
	query := `
		INSERT INTO representatives (project_id, user_id, role_ids, joined_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var repID int64
	err := tx.ExecutorFor(ctx, s.db).
		QueryRowContext(ctx, query, int64(r.ProjectID), uuid.UUID(r.UserID), postgres.Int64Array(r.RoleIDs), r.JoinedAt).
		Scan(&repID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create representative: %w", err)
	}
	r.ID = id.RepresentativeID(repID)
	return nil
}

const selectRepresentative = `SELECT id, project_id, user_id, role_ids, joined_at FROM representatives`

func (s *PostgresStore) FindRepresentative(ctx context.Context, representativeID id.RepresentativeID) (*models.Representative, error) {
	row := tx.ExecutorFor(ctx, s.db).QueryRowContext(ctx, selectRepresentative+` WHERE id = $1`, int64(representativeID))
	r, err := scanRepresentative(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find representative: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) FindRepresentativeByUser(ctx context.Context, userID id.UserID, projectID id.ProjectID) (*models.Representative, error) {
	row := tx.ExecutorFor(ctx, s.db).QueryRowContext(ctx,
		selectRepresentative+` WHERE user_id = $1 AND project_id = $2`, uuid.UUID(userID), int64(projectID))
	r, err := scanRepresentative(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find representative by user: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) ListRepresentatives(ctx context.Context, projectID id.ProjectID) ([]*models.Representative, error) {
	rows, err := tx.ExecutorFor(ctx, s.db).QueryContext(ctx,
		selectRepresentative+` WHERE project_id = $1 ORDER BY id`, int64(projectID))
	if err != nil {
		return nil, fmt.Errorf("list representatives: %w", err)
	}
	defer rows.Close()

	var out []*models.Representative
	for rows.Next() {
		r, err := scanRepresentative(rows)
		if err != nil {
			return nil, fmt.Errorf("scan representative: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list representatives: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRepresentative(row rowScanner) (*models.Representative, error) {
	var (
		r         models.Representative
		repID     int64
		projectID int64
		userID    uuid.UUID
		roleIDs   pq.Int64Array
	)
	if err := row.Scan(&repID, &projectID, &userID, &roleIDs, &r.JoinedAt); err != nil {
		return nil, err
	}
	r.ID = id.RepresentativeID(repID)
	r.ProjectID = id.ProjectID(projectID)
	r.UserID = id.UserID(userID)
	r.RoleIDs = postgres.FromInt64Array[id.RoleID](roleIDs)
	return &r, nil
}
