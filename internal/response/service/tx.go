package service

import (
	"context"
	"sync"
	"time"

	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
)

// ResponseStoreTx provides a transactional boundary for response store mutations.
// Implementations may wrap a database transaction or, in-memory, a sharded lock.
type ResponseStoreTx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

// numResponseShards spreads writers across locks keyed by project, so every
// document of a project is written under the same shard.
const numResponseShards = 64

// DefaultTxTimeout bounds a transaction whose context has no deadline.
const DefaultTxTimeout = 5 * time.Second

type shardedResponseTx struct {
	shards  [numResponseShards]sync.Mutex
	store   Store
	timeout time.Duration
}

// NewShardedTx serialises writers per project over an in-memory store.
func NewShardedTx(store Store, timeout time.Duration) ResponseStoreTx {
	return &shardedResponseTx{store: store, timeout: timeout}
}

func (t *shardedResponseTx) RunInTx(ctx context.Context, fn func(store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = DefaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := t.selectShard(ctx)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// the wait for the lock may have used up the deadline
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(t.store)
}

func (t *shardedResponseTx) selectShard(ctx context.Context) int {
	if projectID, ok := ctx.Value(txProjectKeyCtx).(id.ProjectID); ok && projectID > 0 {
		return int(uint64(projectID) % numResponseShards)
	}
	return 0
}

type txProjectKey struct{}

var txProjectKeyCtx = txProjectKey{}

// withTxProject tags ctx with the project whose documents the transaction writes.
func withTxProject(ctx context.Context, projectID id.ProjectID) context.Context {
	return context.WithValue(ctx, txProjectKeyCtx, projectID)
}
