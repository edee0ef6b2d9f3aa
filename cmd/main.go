package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"wedding-rsvp/internal/cache"
	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/controller"
	"wedding-rsvp/internal/database"
	"wedding-rsvp/internal/i18n"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/queue"
	"wedding-rsvp/internal/relay"
	"wedding-rsvp/internal/repository"
	"wedding-rsvp/internal/routes"
	"wedding-rsvp/internal/rsvp"
	"wedding-rsvp/internal/store"
	"wedding-rsvp/internal/telemetry"
	"wedding-rsvp/internal/worker"
	"wedding-rsvp/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	st, err := loadSettings()
	if err != nil {
		logger.Error(ctx, "Invalid configuration; exiting", "error", err)
		os.Exit(1)
	}
	cfg, target := st.cfg, st.target

	shutdownTracing, err := telemetry.Setup(ctx, "wedding-rsvp", cfg.OTELEndpoint)
	if err != nil {
		logger.Warn(ctx, "Tracing disabled", "error", err)
	}

	checks := map[string]controller.ReadyCheck{}
	remote := remoteStore(ctx, cfg, checks)

	localDB, err := database.OpenLocal(ctx, cfg.LocalStorePath)
	if err != nil {
		logger.Error(ctx, "Local store not available; exiting", "error", err)
		os.Exit(1)
	}
	defer localDB.Close()
	local := store.Traced(store.NewSQLite(localDB), "sqlite")

	repo := repository.Select(ctx, remote, local)

	var listCache *cache.Submissions
	if rc := cache.Client(ctx); rc != nil {
		listCache = cache.NewSubmissions(rc, time.Duration(cfg.CacheTTL)*time.Second)
	}

	notifier := newNotifier(ctx, cfg)
	var writerRelay relay.Notifier = notifier
	if notifier == nil {
		writerRelay = relay.NotifierFunc(func(context.Context, models.Submission) error {
			return relay.ErrNotDelivered
		})
	}

	loader := rsvp.NewLoader(repo, listCache)
	opts := []rsvp.WriterOption{
		rsvp.WithLocation(cfg.Event.Location()),
		rsvp.WithCache(loader),
	}
	if queue.Enabled() {
		queue.EnsureTopic(ctx)
		if p := queue.Producer(ctx); p != nil {
			defer p.Close()
			opts = append(opts, rsvp.WithPublisher(queue.NewPublisher(p)))
		}
		// Drops the list cache when another replica stores a submission.
		go worker.Run(ctx, loader)
	}

	h := controller.New(controller.Deps{
		Loader: loader,
		Writer: rsvp.NewWriter(repo, writerRelay, opts...),
		Relay:  notifier,
		Target: target,
		Checks: checks,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(h, cfg.JWTSecret, st.locale),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // countdown stream stays open
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort, "target", target)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error(ctx, "Tracer shutdown error", "error", err)
		}
	}
	logger.Info(ctx, "Server stopped")
}

type settings struct {
	cfg    *config.Config
	target time.Time
	locale language.Tag
}

// loadSettings reads the environment and rejects anything the service
// cannot run with.
func loadSettings() (settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return settings{}, err
	}
	target, err := cfg.Event.Target()
	if err != nil {
		return settings{}, err
	}
	locale, ok := i18n.Parse(cfg.Event.DefaultLocale)
	if !ok {
		return settings{}, fmt.Errorf("invalid DEFAULT_LOCALE %q", cfg.Event.DefaultLocale)
	}
	return settings{cfg: cfg, target: target, locale: locale}, nil
}

// remoteStore connects the configured remote backend and registers its
// readiness check. It returns nil when the backend is local or unreachable.
func remoteStore(ctx context.Context, cfg *config.Config, checks map[string]controller.ReadyCheck) store.KV {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		rc := cache.Client(ctx)
		if rc == nil {
			return nil
		}
		checks["redis"] = func(ctx context.Context) error { return rc.Ping(ctx).Err() }
		return store.Traced(store.NewRedis(rc), "redis")
	case config.BackendPostgres:
		db := database.DB(ctx)
		if db == nil {
			return nil
		}
		if err := database.MigrateOrCreateSchema(ctx, db); err != nil {
			logger.Error(ctx, "Schema migration failed", "error", err)
			return nil
		}
		checks["postgres"] = db.PingContext
		return store.Traced(store.NewPostgres(db), "postgres")
	default:
		return nil
	}
}

// newNotifier picks the remote relay route when RELAY_URL is set, otherwise
// the in-process Resend mailer. nil means host alerts cannot be sent.
func newNotifier(ctx context.Context, cfg *config.Config) relay.Notifier {
	if cfg.Relay.URL != "" {
		c, err := relay.NewClient(cfg.Relay.URL, cfg.Relay.Timeout)
		if err != nil {
			logger.Error(ctx, "Invalid RELAY_URL", "error", err)
			return nil
		}
		return c
	}
	if !cfg.RelayConfigured() {
		logger.Error(ctx, "Relay not configured (RESEND_API_KEY, RELAY_TO); submissions will be stored but not delivered")
		return nil
	}
	tag, ok := i18n.Parse(cfg.Relay.Locale)
	if !ok {
		tag = i18n.Kazakh
	}
	m, err := relay.NewMailer(relay.MailerConfig{
		Endpoint: cfg.Relay.Endpoint,
		APIKey:   cfg.Relay.APIKey,
		From:     cfg.Relay.From,
		To:       cfg.Relay.To,
		Locale:   tag,
		Timeout:  cfg.Relay.Timeout,
	})
	if err != nil {
		logger.Error(ctx, "Relay mailer rejected its configuration", "error", err)
		return nil
	}
	return m
}
