package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/postgres"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/tx"
)

// PostgresStore persists the question catalogue in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalogue store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateQuestionnaire(ctx context.Context, q *models.Questionnaire) error {
	query := `
		INSERT INTO questionnaires (project_id, stage_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var questionnaireID int64
	err := tx.ExecutorFor(ctx, s.db).
		QueryRowContext(ctx, query, int64(q.ProjectID), nullStage(q.StageID), q.Name, q.CreatedAt).
		Scan(&questionnaireID)
	if err != nil {
		return fmt.Errorf("create questionnaire: %w", err)
	}
	q.ID = id.QuestionnaireID(questionnaireID)
	return nil
}

func (s *PostgresStore) AddQuestion(ctx context.Context, q *models.Question) error {
	query := `
		INSERT INTO questions (questionnaire_id, position, text, stage_ids, role_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var questionID int64
	err := tx.ExecutorFor(ctx, s.db).
		QueryRowContext(ctx, query, int64(q.QuestionnaireID), q.Position, q.Text,
			postgres.Int64Array(q.StageIDs), postgres.Int64Array(q.RoleIDs)).
		Scan(&questionID)
	if err != nil {
		return fmt.Errorf("add question: %w", err)
	}
	q.ID = id.QuestionID(questionID)
	return nil
}

const selectQuestionnaire = `SELECT id, project_id, stage_id, name, created_at FROM questionnaires`

func (s *PostgresStore) FindQuestionnaire(ctx context.Context, questionnaireID id.QuestionnaireID) (*models.Questionnaire, error) {
	row := tx.ExecutorFor(ctx, s.db).QueryRowContext(ctx, selectQuestionnaire+` WHERE id = $1`, int64(questionnaireID))
	q, err := scanQuestionnaire(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find questionnaire: %w", err)
	}
	return q, nil
}

func (s *PostgresStore) ListByProject(ctx context.Context, projectID id.ProjectID) ([]*models.Questionnaire, error) {
	rows, err := tx.ExecutorFor(ctx, s.db).QueryContext(ctx,
		selectQuestionnaire+` WHERE project_id = $1 ORDER BY id`, int64(projectID))
	if err != nil {
		return nil, fmt.Errorf("list questionnaires: %w", err)
	}
	defer rows.Close()

	var out []*models.Questionnaire
	for rows.Next() {
		q, err := scanQuestionnaire(rows)
		if err != nil {
			return nil, fmt.Errorf("scan questionnaire: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questionnaires: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) OrderedQuestionsFor(ctx context.Context, questionnaireID id.QuestionnaireID) ([]models.Question, error) {
	if _, err := s.FindQuestionnaire(ctx, questionnaireID); err != nil {
		return nil, err
	}
	rows, err := tx.ExecutorFor(ctx, s.db).QueryContext(ctx, `
		SELECT id, questionnaire_id, position, text, stage_ids, role_ids
		FROM questions
		WHERE questionnaire_id = $1
		ORDER BY position, id
	`, int64(questionnaireID))
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	out := []models.Question{}
	for rows.Next() {
		var (
			q                 models.Question
			questionID, qnID  int64
			stageIDs, roleIDs pq.Int64Array
		)
		if err := rows.Scan(&questionID, &qnID, &q.Position, &q.Text, &stageIDs, &roleIDs); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.ID = id.QuestionID(questionID)
		q.QuestionnaireID = id.QuestionnaireID(qnID)
		q.StageIDs = postgres.FromInt64Array[id.StageID](stageIDs)
		q.RoleIDs = postgres.FromInt64Array[id.RoleID](roleIDs)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestionnaire(row rowScanner) (*models.Questionnaire, error) {
	var (
		q                        models.Questionnaire
		questionnaireID, project int64
		stage                    sql.NullInt64
	)
	if err := row.Scan(&questionnaireID, &project, &stage, &q.Name, &q.CreatedAt); err != nil {
		return nil, err
	}
	q.ID = id.QuestionnaireID(questionnaireID)
	q.ProjectID = id.ProjectID(project)
	if stage.Valid {
		stageID := id.StageID(stage.Int64)
		q.StageID = &stageID
	}
	return &q, nil
}

func nullStage(stageID *id.StageID) sql.NullInt64 {
	if stageID == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*stageID), Valid: true}
}
