// Package seed loads a YAML fixture of projects, representatives and
// questionnaires and provisions their response documents.
//
// A fixture looks like:
//
//	projects:
//	  - name: LGPD assessment
//	    owner_id: 5f0c...
//	    representatives:
//	      - user_id: 9a1e...
//	        role_ids: [1]
//	    questionnaires:
//	      - name: Data handling
//	        stage_id: 2
//	        questions:
//	          - text: Is personal data inventoried?
//	            stage_ids: [2]
//	            role_ids: [1]
//
// Each representative and each questionnaire is committed together with the
// response documents it triggers, when the loader has a transaction runner.
// Applying a fixture twice creates everything twice; run it once per database.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	pmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/models"
	qmodels "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/models"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/service"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

type Fixture struct {
	Projects []ProjectFixture `yaml:"projects"`
}

type ProjectFixture struct {
	Name            string                  `yaml:"name"`
	OwnerID         string                  `yaml:"owner_id"`
	Representatives []RepresentativeFixture `yaml:"representatives"`
	Questionnaires  []QuestionnaireFixture  `yaml:"questionnaires"`
}

type RepresentativeFixture struct {
	UserID  string      `yaml:"user_id"`
	RoleIDs []id.RoleID `yaml:"role_ids"`
}

type QuestionnaireFixture struct {
	Name      string            `yaml:"name"`
	StageID   *id.StageID       `yaml:"stage_id"`
	Questions []QuestionFixture `yaml:"questions"`
}

type QuestionFixture struct {
	Text     string       `yaml:"text"`
	StageIDs []id.StageID `yaml:"stage_ids"`
	RoleIDs  []id.RoleID  `yaml:"role_ids"`
}

// ProjectWriter creates projects and their representatives.
type ProjectWriter interface {
	CreateProject(ctx context.Context, p *pmodels.Project) error
	CreateRepresentative(ctx context.Context, r *pmodels.Representative) error
}

// QuestionnaireWriter creates questionnaires and their questions.
type QuestionnaireWriter interface {
	CreateQuestionnaire(ctx context.Context, q *qmodels.Questionnaire) error
	AddQuestion(ctx context.Context, q *qmodels.Question) error
}

// Provisioner creates the response documents of new representatives and
// questionnaires.
type Provisioner interface {
	ProvisionForRepresentative(ctx context.Context, projectID id.ProjectID, representativeID id.RepresentativeID) (service.ProvisionResult, error)
	ProvisionForQuestionnaire(ctx context.Context, questionnaireID id.QuestionnaireID) (service.ProvisionResult, error)
}

// TxRunner runs fn atomically. Stores called with the ctx handed to fn must
// join the transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

func runDirect(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Result counts what Apply created.
type Result struct {
	Projects        int
	Representatives int
	Questionnaires  int
	Questions       int
	Documents       int
}

// LoadFile reads and validates a fixture file.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a fixture. Unknown keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fixture Fixture
	if err := dec.Decode(&fixture); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := fixture.validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

func (f *Fixture) validate() error {
	for i, p := range f.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("projects[%d]: name is required", i)
		}
		if _, err := id.ParseUserID(p.OwnerID); err != nil {
			return fmt.Errorf("projects[%d]: %w", i, err)
		}
		seen := make(map[string]bool, len(p.Representatives))
		for j, r := range p.Representatives {
			if _, err := id.ParseUserID(r.UserID); err != nil {
				return fmt.Errorf("projects[%d].representatives[%d]: %w", i, j, err)
			}
			if seen[r.UserID] {
				return fmt.Errorf("projects[%d].representatives[%d]: duplicate user %s", i, j, r.UserID)
			}
			seen[r.UserID] = true
		}
		for j, q := range p.Questionnaires {
			if strings.TrimSpace(q.Name) == "" {
				return fmt.Errorf("projects[%d].questionnaires[%d]: name is required", i, j)
			}
			for k, question := range q.Questions {
				if strings.TrimSpace(question.Text) == "" {
					return fmt.Errorf("projects[%d].questionnaires[%d].questions[%d]: text is required", i, j, k)
				}
			}
		}
	}
	return nil
}

// Loader applies fixtures through the module stores.
type Loader struct {
	projects       ProjectWriter
	questionnaires QuestionnaireWriter
	provisioner    Provisioner
	logger         *slog.Logger
	atomic         TxRunner
	now            func() time.Time
}

type Option func(*Loader)

// WithTxRunner makes each trigger and its provisioning one unit of work.
// Without it, steps run directly against the stores.
func WithTxRunner(run TxRunner) Option {
	return func(l *Loader) {
		if run != nil {
			l.atomic = run
		}
	}
}

func NewLoader(projects ProjectWriter, questionnaires QuestionnaireWriter, provisioner Provisioner, logger *slog.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Loader{
		projects:       projects,
		questionnaires: questionnaires,
		provisioner:    provisioner,
		logger:         logger,
		atomic:         runDirect,
		now:            time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Apply creates every entity of the fixture in order. A representative is
// provisioned for the questionnaires that already exist; a questionnaire is
// provisioned for the representatives created before it.
func (l *Loader) Apply(ctx context.Context, fixture *Fixture) (Result, error) {
	var result Result
	now := l.now()
	for _, pf := range fixture.Projects {
		ownerID, _ := id.ParseUserID(pf.OwnerID)
		project := &pmodels.Project{Name: pf.Name, OwnerID: ownerID, CreatedAt: now}
		if err := l.projects.CreateProject(ctx, project); err != nil {
			return result, fmt.Errorf("create project %q: %w", pf.Name, err)
		}
		result.Projects++

		for _, rf := range pf.Representatives {
			created, err := l.addRepresentative(ctx, project.ID, rf, now)
			if err != nil {
				return result, err
			}
			result.Representatives++
			result.Documents += created
		}

		for _, qf := range pf.Questionnaires {
			created, err := l.addQuestionnaire(ctx, project.ID, qf, now)
			if err != nil {
				return result, err
			}
			result.Questionnaires++
			result.Questions += len(qf.Questions)
			result.Documents += created
		}

		l.logger.InfoContext(ctx, "seeded project",
			"project_id", project.ID,
			"name", project.Name,
			"representatives", len(pf.Representatives),
			"questionnaires", len(pf.Questionnaires),
		)
	}
	return result, nil
}

func (l *Loader) addRepresentative(ctx context.Context, projectID id.ProjectID, rf RepresentativeFixture, now time.Time) (int, error) {
	var created int
	err := l.atomic(ctx, func(ctx context.Context) error {
		userID, _ := id.ParseUserID(rf.UserID)
		rep := &pmodels.Representative{ProjectID: projectID, UserID: userID, RoleIDs: rf.RoleIDs, JoinedAt: now}
		if err := l.projects.CreateRepresentative(ctx, rep); err != nil {
			return fmt.Errorf("create representative %s: %w", rf.UserID, err)
		}
		provisioned, err := l.provisioner.ProvisionForRepresentative(ctx, projectID, rep.ID)
		if err != nil {
			return fmt.Errorf("provision representative %s: %w", rf.UserID, err)
		}
		created = provisioned.Created
		return nil
	})
	return created, err
}

func (l *Loader) addQuestionnaire(ctx context.Context, projectID id.ProjectID, qf QuestionnaireFixture, now time.Time) (int, error) {
	var created int
	err := l.atomic(ctx, func(ctx context.Context) error {
		questionnaire := &qmodels.Questionnaire{ProjectID: projectID, StageID: qf.StageID, Name: qf.Name, CreatedAt: now}
		if err := l.questionnaires.CreateQuestionnaire(ctx, questionnaire); err != nil {
			return fmt.Errorf("create questionnaire %q: %w", qf.Name, err)
		}
		for pos, question := range qf.Questions {
			q := &qmodels.Question{
				QuestionnaireID: questionnaire.ID,
				Position:        pos,
				Text:            question.Text,
				StageIDs:        question.StageIDs,
				RoleIDs:         question.RoleIDs,
			}
			if err := l.questionnaires.AddQuestion(ctx, q); err != nil {
				return fmt.Errorf("add question %d to %q: %w", pos, qf.Name, err)
			}
		}
		provisioned, err := l.provisioner.ProvisionForQuestionnaire(ctx, questionnaire.ID)
		if err != nil {
			return fmt.Errorf("provision questionnaire %q: %w", qf.Name, err)
		}
		created = provisioned.Created
		return nil
	})
	return created, err
}
