package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTx(t *testing.T) {
	t.Run("nil transaction leaves context untouched", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, WithTx(ctx, nil))
		_, ok := From(ctx)
		assert.False(t, ok)
	})

	t.Run("round-trips a transaction", func(t *testing.T) {
		tx := &sql.Tx{}
		got, ok := From(WithTx(context.Background(), tx))
		assert.True(t, ok)
		assert.Same(t, tx, got)
	})

	t.Run("executor prefers the transaction", func(t *testing.T) {
		db := &sql.DB{}
		tx := &sql.Tx{}
		assert.Same(t, db, ExecutorFor(context.Background(), db))
		assert.Same(t, tx, ExecutorFor(WithTx(context.Background(), tx), db))
	})
}

func TestAfterCommit(t *testing.T) {
	t.Run("without a transaction the hook is not kept", func(t *testing.T) {
		assert.False(t, AfterCommit(context.Background(), func(context.Context) {}))
	})

	t.Run("hooks run once, in registration order", func(t *testing.T) {
		ctx := WithTx(context.Background(), &sql.Tx{})
		var calls []int
		assert.True(t, AfterCommit(ctx, func(context.Context) { calls = append(calls, 1) }))
		assert.True(t, AfterCommit(ctx, func(context.Context) { calls = append(calls, 2) }))

		state := ctx.Value(ctxKey{}).(*txState)
		state.runAfterCommit(ctx)
		state.runAfterCommit(ctx)
		assert.Equal(t, []int{1, 2}, calls)
	})
}
