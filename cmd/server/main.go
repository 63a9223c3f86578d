package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	jwttoken "github.com/yvesls/ethicalsoft-compliance-sub000/internal/jwt_token"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/config"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/httpserver"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/logger"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/postgres"
)

// main wires the CLI. Business logic lives in internal services packages.
func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "compliance-responses",
		Short:         "Questionnaire response engine for compliance projects",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), tokenCmd())
	return root
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the audit worker",
		Long: `Run the HTTP API and the audit worker until SIGINT or SIGTERM.

With no DATABASE_URL the service keeps everything in memory and, when
SEED_PATH is set, loads that fixture at startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := config.FromEnv()
			log := logger.New(cfg.Log)

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			if a.db != nil && migrate {
				if err := postgres.Migrate(ctx, a.db, log); err != nil {
					return err
				}
			}
			if a.db == nil && cfg.SeedPath != "" {
				result, err := a.seed(ctx, cfg.SeedPath)
				if err != nil {
					return err
				}
				log.InfoContext(ctx, "seed applied", "projects", result.Projects, "documents", result.Documents)
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return a.auditWorker.Run(gctx)
			})
			g.Go(func() error {
				return httpserver.Run(gctx, a.server, cfg.Server.ShutdownTimeout, log)
			})
			if err := g.Wait(); err != nil {
				log.Error("server stopped with error", "error", err)
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			log := logger.New(cfg.Log)
			db, err := postgres.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			if db == nil {
				return fmt.Errorf("DATABASE_URL is required")
			}
			defer db.Close()
			return postgres.Migrate(cmd.Context(), db, log)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load a YAML fixture into the database and provision its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			log := logger.New(cfg.Log)
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required; in-memory mode seeds through SEED_PATH on serve")
			}
			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.seed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_ = a.auditWorker.Run(cancelledContext())
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d projects, %d representatives, %d questionnaires, %d questions, %d documents\n",
				result.Projects, result.Representatives, result.Questionnaires, result.Questions, result.Documents)
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		userID string
		admin  bool
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			subject := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
				subject = parsed
			}
			svc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
			token, err := svc.GenerateAccessToken(subject, admin, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (random when empty)")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

// cancelledContext makes a worker flush its buffered events and return.
func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
