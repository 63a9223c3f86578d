package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/tx"
)

// PostgresStore persists response documents in PostgreSQL with answers as JSONB.
// This store is pure I/O; status and validation rules stay in the models.
type PostgresStore struct {
	db   *sql.DB
	exec tx.Executor
}

// NewPostgres constructs a PostgreSQL-backed response store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx binds a store to an open transaction.
func NewPostgresTx(sqlTx *sql.Tx) *PostgresStore {
	return &PostgresStore{exec: sqlTx}
}

func (s *PostgresStore) executor(ctx context.Context) tx.Executor {
	if s.exec != nil {
		return s.exec
	}
	return tx.ExecutorFor(ctx, s.db)
}

const selectDocument = `
	SELECT id, project_id, questionnaire_id, representative_id, stage_id, status,
	       submission_date, answers, version, created_at, updated_at
	FROM response_documents
`

func (s *PostgresStore) FindDocument(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, representativeID *id.RepresentativeID) (*models.ResponseDocument, error) {
	query := selectDocument + `
		WHERE project_id = $1 AND questionnaire_id = $2 AND COALESCE(representative_id, 0) = $3
	`
	key := models.KeyFor(projectID, questionnaireID, representativeID)
	row := s.executor(ctx).QueryRowContext(ctx, query,
		int64(key.ProjectID), int64(key.QuestionnaireID), int64(key.RepresentativeID))
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find response document: %w", err)
	}
	return doc, nil
}

// Create inserts doc at version 1. An existing key yields ErrAlreadyUsed
// without aborting the surrounding transaction.
func (s *PostgresStore) Create(ctx context.Context, doc *models.ResponseDocument) error {
	answers, err := json.Marshal(doc.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	query := `
		INSERT INTO response_documents (
			project_id, questionnaire_id, representative_id, stage_id, status,
			submission_date, answers, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9)
		ON CONFLICT DO NOTHING
		RETURNING id
	`
	var docID int64
	err = s.executor(ctx).QueryRowContext(ctx, query,
		int64(doc.ProjectID),
		int64(doc.QuestionnaireID),
		nullInt64(doc.RepresentativeID),
		nullInt64(doc.StageID),
		string(doc.Status),
		doc.SubmissionDate,
		answers,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create response document: %w", err)
	}
	doc.ID = id.DocumentID(docID)
	doc.Version = 1
	return nil
}

// Save writes the mutable fields when the stored version still equals doc.Version.
func (s *PostgresStore) Save(ctx context.Context, doc *models.ResponseDocument) error {
	answers, err := json.Marshal(doc.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	key := doc.Key()
	query := `
		UPDATE response_documents
		SET status = $1, submission_date = $2, answers = $3, updated_at = $4, version = version + 1
		WHERE project_id = $5 AND questionnaire_id = $6 AND COALESCE(representative_id, 0) = $7
		  AND version = $8
		RETURNING version
	`
	var version int64
	err = s.executor(ctx).QueryRowContext(ctx, query,
		string(doc.Status),
		doc.SubmissionDate,
		answers,
		doc.UpdatedAt,
		int64(key.ProjectID),
		int64(key.QuestionnaireID),
		int64(key.RepresentativeID),
		doc.Version,
	).Scan(&version)
	if err == nil {
		doc.Version = version
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("save response document: %w", err)
	}
	// no row matched: tell a stale version apart from a missing document
	if _, findErr := s.FindDocument(ctx, doc.ProjectID, doc.QuestionnaireID, doc.RepresentativeID); findErr != nil {
		return findErr
	}
	return sentinel.ErrConflict
}

func (s *PostgresStore) FindAllForProjectAndQuestionnaire(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID) ([]*models.ResponseDocument, error) {
	query := selectDocument + `
		WHERE project_id = $1 AND questionnaire_id = $2
		ORDER BY COALESCE(representative_id, 0)
	`
	rows, err := s.executor(ctx).QueryContext(ctx, query, int64(projectID), int64(questionnaireID))
	if err != nil {
		return nil, fmt.Errorf("list response documents: %w", err)
	}
	defer rows.Close()

	var out []*models.ResponseDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response document: %w", err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list response documents: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.ResponseDocument, error) {
	var (
		doc                   models.ResponseDocument
		docID, project, qn    int64
		representative, stage sql.NullInt64
		status                string
		submission            sql.NullTime
		answers               []byte
	)
	if err := row.Scan(&docID, &project, &qn, &representative, &stage, &status,
		&submission, &answers, &doc.Version, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.ID = id.DocumentID(docID)
	doc.ProjectID = id.ProjectID(project)
	doc.QuestionnaireID = id.QuestionnaireID(qn)
	if representative.Valid {
		repID := id.RepresentativeID(representative.Int64)
		doc.RepresentativeID = &repID
	}
	if stage.Valid {
		stageID := id.StageID(stage.Int64)
		doc.StageID = &stageID
	}
	doc.Status = models.Status(status)
	if submission.Valid {
		t := submission.Time
		doc.SubmissionDate = &t
	}
	if err := json.Unmarshal(answers, &doc.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	if doc.Answers == nil {
		doc.Answers = []models.AnswerEntry{}
	}
	return &doc, nil
}

func nullInt64[T ~int64](v *T) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
