// Package tx carries SQL transactions through context so stores written
// against *sql.DB join a surrounding transaction without new signatures.
package tx

import (
	"context"
	"database/sql"
	"sync"

	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
)

type ctxKey struct{}

type txState struct {
	sqlTx *sql.Tx

	mu          sync.Mutex
	afterCommit []func(context.Context)
}

// WithTx returns ctx carrying sqlTx. A nil transaction leaves ctx unchanged.
func WithTx(ctx context.Context, sqlTx *sql.Tx) context.Context {
	if sqlTx == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, &txState{sqlTx: sqlTx})
}

// From returns the transaction carried by ctx.
func From(ctx context.Context) (*sql.Tx, bool) {
	state, ok := ctx.Value(ctxKey{}).(*txState)
	if !ok {
		return nil, false
	}
	return state.sqlTx, true
}

// AfterCommit schedules fn to run once the transaction carried by ctx commits.
// It reports false, and does not keep fn, when ctx carries no transaction.
// Hooks are dropped on rollback.
func AfterCommit(ctx context.Context, fn func(context.Context)) bool {
	state, ok := ctx.Value(ctxKey{}).(*txState)
	if !ok {
		return false
	}
	state.mu.Lock()
	state.afterCommit = append(state.afterCommit, fn)
	state.mu.Unlock()
	return true
}

func (s *txState) runAfterCommit(ctx context.Context) {
	s.mu.Lock()
	hooks := s.afterCommit
	s.afterCommit = nil
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}

// Executor is the query surface shared by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ExecutorFor returns the transaction carried by ctx, or db when there is none.
func ExecutorFor(ctx context.Context, db *sql.DB) Executor {
	if sqlTx, ok := From(ctx); ok {
		return sqlTx
	}
	return db
}

// Run executes fn in a transaction on db and commits when fn returns nil.
// The context handed to fn carries the transaction, and AfterCommit hooks
// registered on it run after a successful commit. Errors from fn are
// returned as is; begin and commit failures are internal errors.
func Run(ctx context.Context, db *sql.DB, fn func(ctx context.Context, sqlTx *sql.Tx) error) error {
	sqlTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	state := &txState{sqlTx: sqlTx}
	if err := fn(context.WithValue(ctx, ctxKey{}, state), sqlTx); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	state.runAfterCommit(context.WithoutCancel(ctx))
	return nil
}
