//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/metrics"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/models"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/store"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/store/cache"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/testutil/containers"
)

// pausingStore holds the first FindDocument after the inner read until
// release is closed.
type pausingStore struct {
	*store.InMemory
	read    chan struct{}
	release chan struct{}
	paused  bool
}

func (p *pausingStore) FindDocument(ctx context.Context, projectID id.ProjectID, questionnaireID id.QuestionnaireID, representativeID *id.RepresentativeID) (*models.ResponseDocument, error) {
	doc, err := p.InMemory.FindDocument(ctx, projectID, questionnaireID, representativeID)
	if !p.paused {
		p.paused = true
		close(p.read)
		<-p.release
	}
	return doc, err
}

type CacheSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	inner   *store.InMemory
	metrics *metrics.Metrics
	cache   *cache.Store
	ctx     context.Context
}

func TestCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.ctx = context.Background()
}

func (s *CacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.inner = store.NewInMemory()
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.cache = cache.New(s.inner, s.redis.Client, cache.WithMetrics(s.metrics), cache.WithTTL(time.Minute))
}

func (s *CacheSuite) lookups(result string) float64 {
	return testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues(result))
}

func (s *CacheSuite) seed() *models.ResponseDocument {
	template := []models.AnswerEntry{{QuestionID: 1, QuestionText: "q1", Attachments: []models.Link{}}}
	doc := models.NewResponseDocument(1, 2, nil, nil, template, time.Now().UTC())
	s.Require().NoError(s.inner.Create(s.ctx, doc))
	return doc
}

func (s *CacheSuite) TestSecondReadIsAHit() {
	doc := s.seed()

	first, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	second, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)

	s.Equal(doc.ID, first.ID)
	s.Equal(first.Version, second.Version)
	s.Equal("q1", second.Answers[0].QuestionText)
	s.InDelta(1, s.lookups("miss"), 0)
	s.InDelta(1, s.lookups("hit"), 0)
}

func (s *CacheSuite) TestSaveInvalidates() {
	s.seed()
	doc, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)

	doc.Answers[0].Response = models.AnswerTrue
	doc.Status = models.CalculateStatus(doc.Answers)
	s.Require().NoError(s.cache.Save(s.ctx, doc))

	fresh, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, fresh.Status)
	s.Equal(doc.Version, fresh.Version)
	s.InDelta(2, s.lookups("miss"), 0)
}

func (s *CacheSuite) TestWithinTxInvalidatesOnFlush() {
	s.seed()
	_, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)

	view, flush := s.cache.WithinTx(s.inner)
	doc, err := view.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	doc.Answers[0].Response = models.AnswerFalse
	s.Require().NoError(view.Save(s.ctx, doc))

	stale, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	s.Equal(models.AnswerUnset, stale.Answers[0].Response, "cached entry survives until flush")

	flush(s.ctx)
	fresh, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	s.Equal(models.AnswerFalse, fresh.Answers[0].Response)
}

func (s *CacheSuite) TestCorruptEntryIsDiscarded() {
	s.seed()
	s.Require().NoError(s.redis.Client.Set(s.ctx, "responses:doc:1:2:0", "{not json", time.Minute).Err())

	doc, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	s.NotZero(doc.ID)
	s.InDelta(1, s.lookups("error"), 0)

	_, err = s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	s.InDelta(1, s.lookups("hit"), 0)
}

func (s *CacheSuite) TestLateFillDoesNotRestoreSupersededVersion() {
	s.seed()
	slow := &pausingStore{InMemory: s.inner, read: make(chan struct{}), release: make(chan struct{})}
	cached := cache.New(slow, s.redis.Client, cache.WithTTL(time.Minute))

	readerDone := make(chan *models.ResponseDocument)
	go func() {
		doc, err := cached.FindDocument(s.ctx, 1, 2, nil)
		s.NoError(err)
		readerDone <- doc
	}()
	<-slow.read

	view, flush := cached.WithinTx(s.inner)
	doc, err := s.inner.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	doc.Answers[0].Response = models.AnswerTrue
	s.Require().NoError(view.Save(s.ctx, doc))
	flush(s.ctx)

	close(slow.release)
	late := <-readerDone
	s.Equal(int64(1), late.Version, "the slow reader returns what it read")

	n, err := s.redis.Client.Exists(s.ctx, "responses:doc:1:2:0").Result()
	s.Require().NoError(err)
	s.Zero(n, "the superseded version was not cached")

	fresh, err := cached.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	s.Equal(int64(2), fresh.Version)
	s.Equal(models.AnswerTrue, fresh.Answers[0].Response)
}

func (s *CacheSuite) TestFillAtCurrentVersionIsCached() {
	doc := s.seed()
	doc.Answers[0].Response = models.AnswerFalse
	s.Require().NoError(s.cache.Save(s.ctx, doc))

	_, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	hit, err := s.cache.FindDocument(s.ctx, 1, 2, nil)
	s.Require().NoError(err)
	s.Equal(int64(2), hit.Version)
	s.InDelta(1, s.lookups("hit"), 0)
}
