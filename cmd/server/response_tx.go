package main

import (
	"context"
	"database/sql"
	"time"

	responseservice "github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/service"
	responsestore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/store"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/store/cache"
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/tx"
)

type responsePostgresTx struct {
	db      *sql.DB
	timeout time.Duration
	cache   *cache.Store
}

// newResponsePostgresTx runs response writes in a database transaction. When
// cache is set, the transaction sees the cache as a pass-through view whose
// invalidations are applied after commit.
func newResponsePostgresTx(db *sql.DB, timeout time.Duration, cache *cache.Store) *responsePostgresTx {
	return &responsePostgresTx{db: db, timeout: timeout, cache: cache}
}

func (t *responsePostgresTx) RunInTx(ctx context.Context, fn func(store responseservice.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	// join a transaction opened by the caller; invalidation waits for its commit
	if sqlTx, ok := tx.From(ctx); ok {
		store, flush := t.bind(sqlTx)
		if err := fn(store); err != nil {
			return err
		}
		if flush != nil {
			tx.AfterCommit(ctx, flush)
		}
		return nil
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = responseservice.DefaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return tx.Run(ctx, t.db, func(txCtx context.Context, sqlTx *sql.Tx) error {
		store, flush := t.bind(sqlTx)
		if err := fn(store); err != nil {
			return err
		}
		if flush != nil {
			tx.AfterCommit(txCtx, flush)
		}
		return nil
	})
}

func (t *responsePostgresTx) bind(sqlTx *sql.Tx) (responseservice.Store, func(context.Context)) {
	store := responsestore.NewPostgresTx(sqlTx)
	if t.cache == nil {
		return store, nil
	}
	return t.cache.WithinTx(store)
}

// cachedMemoryTx runs in-memory transactions against the uncached store and
// invalidates the cache for every write once the transaction returns. The
// in-memory store keeps writes made before a failure, so the flush runs
// either way.
type cachedMemoryTx struct {
	next  responseservice.ResponseStoreTx
	cache *cache.Store
}

func newCachedMemoryTx(next responseservice.ResponseStoreTx, cache *cache.Store) *cachedMemoryTx {
	return &cachedMemoryTx{next: next, cache: cache}
}

func (t *cachedMemoryTx) RunInTx(ctx context.Context, fn func(store responseservice.Store) error) error {
	var flush func(context.Context)
	err := t.next.RunInTx(ctx, func(store responseservice.Store) error {
		var view responseservice.Store
		view, flush = t.cache.WithinTx(store)
		return fn(view)
	})
	if flush != nil {
		flush(context.WithoutCancel(ctx))
	}
	return err
}
