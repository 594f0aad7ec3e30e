package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/imjang/internal/bootstrap"
	"github.com/at-ishikawa/imjang/internal/config"
	"github.com/at-ishikawa/imjang/internal/database"
	"github.com/at-ishikawa/imjang/internal/identity"
	"github.com/at-ishikawa/imjang/internal/kakao"
	"github.com/at-ishikawa/imjang/internal/note"
	"github.com/at-ishikawa/imjang/internal/place"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
	"github.com/at-ishikawa/imjang/internal/ratelimit"
	"github.com/at-ishikawa/imjang/internal/server"
)

var configFile string

func main() {
	var migrate bool
	rootCmd := &cobra.Command{
		Use:           "imjang-server",
		Short:         "Imjang appraisal HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), migrate)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&migrate, "migrate", false, "Apply database migrations and seed the default templates before serving")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, migrate bool) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	setupLogger(cfg.Logging)

	handler, err := newHandler(ctx, cfg, app, migrate)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.CORSMiddleware(h2c.NewHandler(handler, &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

// newHandler wires the API. Resources it opens are closed by the shutdown hooks of app.
func newHandler(ctx context.Context, cfg *config.Config, app *bootstrap.App, migrate bool) (http.Handler, error) {
	issuer, err := identity.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("identity.NewIssuer() > %w", err)
	}

	if migrate {
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})

	store, closeStore, err := ratelimit.NewStore(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("ratelimit.NewStore() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return closeStore()
	})

	searcher := kakao.NewClient(cfg.Kakao)
	app.AddShutdownHook(func(context.Context) error {
		return searcher.Close()
	})

	templates := questionnaire.NewService(questionnaire.NewDBTemplateRepository(db))
	if migrate {
		if _, err := templates.SeedDefaults(ctx, false); err != nil {
			return nil, fmt.Errorf("SeedDefaults() > %w", err)
		}
	}
	places := place.NewService(place.NewDBRepository(db))

	srv, err := server.New(server.Options{
		Templates:      templates,
		Places:         places,
		Notes:          note.NewService(note.NewDBRepository(db), places, templates),
		Searcher:       searcher,
		Issuer:         issuer,
		Limiter:        ratelimit.NewLimiter(store, cfg.RateLimit),
		ReportTemplate: cfg.Report.Template,
		TrustedProxies: cfg.Server.TrustedProxies,
	})
	if err != nil {
		return nil, fmt.Errorf("server.New() > %w", err)
	}
	return srv.Handler(), nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func setupLogger(cfg config.LoggingConfig) {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, options)
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	slog.SetDefault(slog.New(handler))
}
