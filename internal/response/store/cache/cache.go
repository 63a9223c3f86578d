// Package cache puts a Redis read-through cache in front of a response store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/metrics"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
)

const (
	documentKeyPrefix = "responses:doc:"
	fenceKeyPrefix    = "responses:fence:"
	defaultTTL        = 10 * time.Minute
)

// fillScript writes a document unless a newer version has been written since
// the caller read it. KEYS: doc, fence. ARGV: version, payload, ttl ms.
var fillScript = redis.NewScript(`
local fence = tonumber(redis.call('GET', KEYS[2]) or '0')
if tonumber(ARGV[1]) < fence then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// invalidateScript raises each fence to the written version and drops the
// cached document. KEYS: doc, fence pairs. ARGV: one version per pair, ttl ms.
var invalidateScript = redis.NewScript(`
local ttl = ARGV[#ARGV]
for i = 1, #KEYS, 2 do
	local version = tonumber(ARGV[(i + 1) / 2])
	local fence = tonumber(redis.call('GET', KEYS[i + 1]) or '0')
	if version > fence then
		redis.call('SET', KEYS[i + 1], version, 'PX', ttl)
	end
	redis.call('DEL', KEYS[i])
end
return 1
`)

// write is one committed document version.
type write struct {
	key     models.DocumentKey
	version int64
}

type documentStore interface {
	FindDocument(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, representativeID *id.RepresentativeID) (*models.ResponseDocument, error)
	Create(ctx context.Context, doc *models.ResponseDocument) error
	Save(ctx context.Context, doc *models.ResponseDocument) error
	FindAllForProjectAndQuestionnaire(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID) ([]*models.ResponseDocument, error)
}

// Store caches FindDocument results. Redis failures fall back to the inner
// store; the cache never turns an outage into a request error.
//
// Every write raises a per-document fence to the written version. A fill
// carrying an older version than the fence is dropped, so a read that loses
// a race with a commit cannot put the superseded document back.
type Store struct {
	inner   documentStore
	client  *redis.Client
	ttl     time.Duration
	group   *singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger

	// set on transactional views only
	mu      *sync.Mutex
	pending *[]write
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New wraps inner with a cache backed by client.
func New(inner documentStore, client *redis.Client, opts ...Option) *Store {
	s := &Store{
		inner:  inner,
		client: client,
		ttl:    defaultTTL,
		group:  &singleflight.Group{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// WithinTx returns a view over a transaction-bound inner store. Reads bypass
// the cache and writes are invalidated only when flush runs after commit.
func (s *Store) WithinTx(inner documentStore) (*Store, func(ctx context.Context)) {
	var pending []write
	view := *s
	view.inner = inner
	view.mu = &sync.Mutex{}
	view.pending = &pending
	flush := func(ctx context.Context) {
		view.mu.Lock()
		writes := *view.pending
		*view.pending = nil
		view.mu.Unlock()
		s.invalidate(ctx, writes...)
	}
	return &view, flush
}

func (s *Store) FindDocument(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, representativeID *id.RepresentativeID) (*models.ResponseDocument, error) {
	if s.pending != nil {
		return s.inner.FindDocument(ctx, projectID, questionnaireID, representativeID)
	}
	key := models.KeyFor(projectID, questionnaireID, representativeID)
	redisKey := cacheKey(key)

	if doc, ok := s.get(ctx, redisKey); ok {
		return doc, nil
	}

	v, err, _ := s.group.Do(redisKey, func() (any, error) {
		doc, err := s.inner.FindDocument(ctx, projectID, questionnaireID, representativeID)
		if err != nil {
			return nil, err
		}
		s.set(ctx, key, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ResponseDocument).Clone(), nil
}

func (s *Store) Create(ctx context.Context, doc *models.ResponseDocument) error {
	if err := s.inner.Create(ctx, doc); err != nil {
		return err
	}
	s.written(ctx, doc)
	return nil
}

func (s *Store) Save(ctx context.Context, doc *models.ResponseDocument) error {
	if err := s.inner.Save(ctx, doc); err != nil {
		return err
	}
	s.written(ctx, doc)
	return nil
}

// FindAllForProjectAndQuestionnaire is not cached.
func (s *Store) FindAllForProjectAndQuestionnaire(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID) ([]*models.ResponseDocument, error) {
	return s.inner.FindAllForProjectAndQuestionnaire(ctx, projectID, questionnaireID)
}

func (s *Store) written(ctx context.Context, doc *models.ResponseDocument) {
	w := write{key: doc.Key(), version: doc.Version}
	if s.pending != nil {
		s.mu.Lock()
		*s.pending = append(*s.pending, w)
		s.mu.Unlock()
		return
	}
	s.invalidate(ctx, w)
}

func (s *Store) get(ctx context.Context, redisKey string) (*models.ResponseDocument, bool) {
	raw, err := s.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		s.metrics.IncrementCacheLookup("miss")
		return nil, false
	}
	if err != nil {
		s.metrics.IncrementCacheLookup("error")
		s.logger.WarnContext(ctx, "response cache read failed", "key", redisKey, "error", err)
		return nil, false
	}
	var doc models.ResponseDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.metrics.IncrementCacheLookup("error")
		s.logger.WarnContext(ctx, "discarding corrupt response cache entry", "key", redisKey, "error", err)
		_ = s.client.Del(ctx, redisKey).Err()
		return nil, false
	}
	s.metrics.IncrementCacheLookup("hit")
	return &doc, true
}

func (s *Store) set(ctx context.Context, key models.DocumentKey, doc *models.ResponseDocument) {
	redisKey := cacheKey(key)
	raw, err := json.Marshal(doc)
	if err != nil {
		s.logger.WarnContext(ctx, "response cache encode failed", "key", redisKey, "error", err)
		return
	}
	stored, err := fillScript.Run(ctx, s.client,
		[]string{redisKey, fenceKey(key)},
		doc.Version, raw, s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		s.logger.WarnContext(ctx, "response cache write failed", "key", redisKey, "error", err)
		return
	}
	if stored == 0 {
		s.logger.DebugContext(ctx, "skipped stale response cache fill", "key", redisKey, "version", doc.Version)
	}
}

func (s *Store) invalidate(ctx context.Context, writes ...write) {
	if len(writes) == 0 {
		return
	}
	keys := make([]string, 0, 2*len(writes))
	args := make([]any, 0, len(writes)+1)
	for _, w := range writes {
		keys = append(keys, cacheKey(w.key), fenceKey(w.key))
		args = append(args, w.version)
	}
	args = append(args, s.ttl.Milliseconds())
	if err := invalidateScript.Run(ctx, s.client, keys, args...).Err(); err != nil {
		s.logger.WarnContext(ctx, "response cache invalidation failed", "keys", keys, "error", err)
	}
}

func cacheKey(k models.DocumentKey) string {
	return fmt.Sprintf("%s%d:%d:%d", documentKeyPrefix, k.ProjectID, k.QuestionnaireID, k.RepresentativeID)
}

func fenceKey(k models.DocumentKey) string {
	return fmt.Sprintf("%s%d:%d:%d", fenceKeyPrefix, k.ProjectID, k.QuestionnaireID, k.RepresentativeID)
}
