package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/audit"
	jwttoken "github.com/yvesls/ethicalsoft-compliance-sub000/internal/jwt_token"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/config"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/httpserver"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/metrics"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/postgres"
	platformredis "github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/redis"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/seed"
	projectstore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/store"
	questionnairestore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/questionnaire/store"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/adapters"
	responsehandler "github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/handler"
	responsemetrics "github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/metrics"
	responseservice "github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/service"
	responsestore "github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/store"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/store/cache"
	httptransport "github.com/yvesls/ethicalsoft-compliance-sub000/internal/transport/http"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/tx"
)

const auditInboxSize = 1024

type projectStore interface {
	adapters.ProjectStore
	seed.ProjectWriter
}

type questionnaireStore interface {
	responseservice.QuestionCatalog
	seed.QuestionnaireWriter
}

// app holds every long-lived dependency of the serve command.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *platformredis.Client
	kafka *audit.KafkaStore

	projects       projectStore
	questionnaires questionnaireStore
	responses      *responseservice.Service

	auditInbox  chan audit.Event
	auditWorker *audit.Worker
	server      *http.Server
}

// newApp opens the configured backends and wires the response module. Without
// DATABASE_URL the in-memory stores are used; without REDIS_URL the document
// cache is skipped; without KAFKA_BROKERS audit stays in-process.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	if a.db, err = postgres.Open(ctx, cfg.Database); err != nil {
		return nil, err
	}
	if a.redis, err = platformredis.New(ctx, cfg.Redis); err != nil {
		return nil, err
	}

	httpMetrics := metrics.New()
	domainMetrics := responsemetrics.NewWithRegisterer(httpMetrics.Registerer())

	var responses, uncached responseservice.Store
	if a.db != nil {
		a.projects = projectstore.NewPostgres(a.db)
		a.questionnaires = questionnairestore.NewPostgres(a.db)
		responses = responsestore.NewPostgres(a.db)
	} else {
		a.projects = projectstore.NewInMemory()
		a.questionnaires = questionnairestore.NewInMemory()
		responses = responsestore.NewInMemory()
	}
	uncached = responses

	var documentCache *cache.Store
	if a.redis != nil {
		documentCache = cache.New(responses, a.redis.Client,
			cache.WithTTL(cfg.Redis.CacheTTL),
			cache.WithMetrics(domainMetrics),
			cache.WithLogger(logger),
		)
		responses = documentCache
	}

	auditSinks := audit.MultiStore{audit.NewInMemoryStore()}
	if len(cfg.Kafka.Brokers) > 0 {
		if a.kafka, err = audit.NewKafkaStore(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic); err != nil {
			return nil, err
		}
		if err = a.kafka.EnsureTopic(ctx, cfg.Kafka.Partitions); err != nil {
			return nil, fmt.Errorf("ensure audit topic: %w", err)
		}
		auditSinks = append(auditSinks, a.kafka)
	}
	a.auditInbox = make(chan audit.Event, auditInboxSize)
	a.auditWorker = audit.NewWorker(auditSinks, a.auditInbox, logger)

	opts := []responseservice.Option{
		responseservice.WithLogger(logger),
		responseservice.WithMetrics(domainMetrics),
		responseservice.WithAuditPublisher(audit.NewPublisher(a.auditInbox)),
	}
	if a.db != nil {
		opts = append(opts, responseservice.WithTx(newResponsePostgresTx(a.db, cfg.Database.TxTimeout, documentCache)))
	} else {
		var memoryTx responseservice.ResponseStoreTx = responseservice.NewShardedTx(uncached, cfg.Database.TxTimeout)
		if documentCache != nil {
			memoryTx = newCachedMemoryTx(memoryTx, documentCache)
		}
		opts = append(opts, responseservice.WithTx(memoryTx))
	}
	a.responses, err = responseservice.New(responses, a.questionnaires, adapters.NewProjectDirectory(a.projects), opts...)
	if err != nil {
		return nil, err
	}

	jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	handler := responsehandler.New(a.responses, logger, jwtService.Validator(), cfg.Pagination)

	health := map[string]httptransport.HealthCheck{}
	if a.db != nil {
		health["postgres"] = a.db.PingContext
	}
	if a.redis != nil {
		health["redis"] = a.redis.Health
	}
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Logger:  logger,
		Metrics: httpMetrics,
		Health:  health,
		Modules: []httptransport.Registrar{handler},
	})
	a.server = httpserver.New(cfg.Server.Addr, router)
	return a, nil
}

// seed applies the fixture at path through the module stores.
func (a *app) seed(ctx context.Context, path string) (seed.Result, error) {
	fixture, err := seed.LoadFile(path)
	if err != nil {
		return seed.Result{}, err
	}
	return a.loader(a.responses).Apply(ctx, fixture)
}

// loader builds a seed loader over the app stores. With a database, each
// trigger and the documents it provisions commit in one transaction.
func (a *app) loader(provisioner seed.Provisioner) *seed.Loader {
	var opts []seed.Option
	if a.db != nil {
		opts = append(opts, seed.WithTxRunner(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return tx.Run(ctx, a.db, func(ctx context.Context, _ *sql.Tx) error {
				return fn(ctx)
			})
		}))
	}
	return seed.NewLoader(a.projects, a.questionnaires, provisioner, a.logger, opts...)
}

func (a *app) close() {
	var errs []error
	if a.kafka != nil {
		a.kafka.Close()
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("error closing resources", "error", err)
	}
}
