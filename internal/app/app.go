package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lostfound-backend/internal/adapter/mail"
	"github.com/heartmarshall/lostfound-backend/internal/adapter/postgres"
	bookmarkrepo "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres/bookmark"
	founditemrepo "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres/founditem"
	lostitemrepo "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres/lostitem"
	notificationrepo "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres/notification"
	userrepo "github.com/heartmarshall/lostfound-backend/internal/adapter/postgres/user"
	redisadapter "github.com/heartmarshall/lostfound-backend/internal/adapter/redis"
	"github.com/heartmarshall/lostfound-backend/internal/auth"
	"github.com/heartmarshall/lostfound-backend/internal/config"
	"github.com/heartmarshall/lostfound-backend/internal/domain"
	"github.com/heartmarshall/lostfound-backend/internal/mailqueue"
	"github.com/heartmarshall/lostfound-backend/internal/metrics"
	"github.com/heartmarshall/lostfound-backend/internal/realtime"
	authsvc "github.com/heartmarshall/lostfound-backend/internal/service/auth"
	bookmarksvc "github.com/heartmarshall/lostfound-backend/internal/service/bookmark"
	founditemsvc "github.com/heartmarshall/lostfound-backend/internal/service/founditem"
	lostitemsvc "github.com/heartmarshall/lostfound-backend/internal/service/lostitem"
	"github.com/heartmarshall/lostfound-backend/internal/service/matching"
	notificationsvc "github.com/heartmarshall/lostfound-backend/internal/service/notification"
	"github.com/heartmarshall/lostfound-backend/internal/transport/dataloader"
	"github.com/heartmarshall/lostfound-backend/internal/transport/middleware"
	"github.com/heartmarshall/lostfound-backend/internal/transport/rest"
)

const rateLimitCleanup = 5 * time.Minute

// notifier is what the matching workflow publishes live events through:
// the local hub, or the redis relay when several instances run.
type notifier interface {
	Publish(ctx context.Context, userID uuid.UUID, n domain.Notification) (int, error)
}

// Run is the application entry point. It wires every component, serves HTTP,
// and blocks until ctx is cancelled or SIGINT/SIGTERM arrives. The mail
// worker outlives the HTTP server so requests still waiting on a delivery
// during shutdown get an answer.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	var rdb *redisadapter.Client
	if cfg.Redis.Enabled() {
		rdb, err = redisadapter.NewClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
	}

	c := wire(cfg, logger, pool, rdb)
	defer c.limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      c.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// The queue gets its own context, cancelled only after the server drains.
	queueCtx, stopQueue := context.WithCancel(context.WithoutCancel(ctx))
	defer stopQueue()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.queue.Run(queueCtx)
	})

	if c.relay != nil {
		g.Go(func() error {
			return c.relay.Run(gctx)
		})
	}

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		defer stopQueue()

		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("application stopped")
	return nil
}

// components is the wired application, minus the listener.
type components struct {
	router  http.Handler
	queue   *mailqueue.Queue
	hub     *realtime.Hub
	relay   *redisadapter.Relay
	limiter *middleware.RateLimiter
	metrics *metrics.Metrics
}

// wire builds every repository, service and handler. rdb is nil when the
// redis relay is disabled. The caller owns starting the queue and relay.
func wire(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, rdb *redisadapter.Client) *components {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Repositories
	users := userrepo.New(pool)
	notifications := notificationrepo.New(pool)
	lostItems := lostitemrepo.New(pool)
	foundItems := founditemrepo.New(pool)
	bookmarks := bookmarkrepo.New(pool)

	// Notification path
	queue := mailqueue.New(newMailTransport(cfg.Mail, logger), mailqueue.Config{
		Size:        cfg.Mail.QueueSize,
		SendTimeout: cfg.Mail.SendTimeout,
	}, logger, m)
	hub := realtime.NewHub(logger, m)

	var live notifier = hub
	var relay *redisadapter.Relay
	if rdb != nil {
		relay = redisadapter.NewRelay(rdb.Client, cfg.Redis.Channel, hub, logger)
		live = relay
		logger.Info("redis relay enabled", slog.String("channel", cfg.Redis.Channel))
	}

	// Services
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, jwtManager, cfg.Auth)
	lostItemService := lostitemsvc.NewService(logger, lostItems, users, postgres.NewTxManager(pool))
	foundItemService := founditemsvc.NewService(logger, foundItems)
	bookmarkService := bookmarksvc.NewService(logger, bookmarks)
	notificationService := notificationsvc.NewService(logger, notifications)
	matchingService := matching.NewService(logger, foundItems, users, notifications, live, queue,
		m.FoundItemsReported, cfg.Matching)

	// HTTP
	health := rest.NewHealthHandler(pool, BuildVersion())
	if rdb != nil {
		health.WithComponent("redis", rest.PingFunc(rdb.Health))
	}

	limiter := middleware.NewRateLimiter(rateLimitCleanup)

	router := rest.NewRouter(rest.RouterDeps{
		Logger:    logger,
		CORS:      cfg.CORS,
		Tokens:    authService,
		Loaders:   &dataloader.Repos{User: users, LostItem: lostItems},
		Limiter:   limiter,
		RateLimit: cfg.Server.RateLimit,
	}, rest.Handlers{
		Health:       health,
		Auth:         rest.NewAuthHandler(authService, logger),
		LostItems:    rest.NewLostItemHandler(lostItemService, logger),
		FoundItems:   rest.NewFoundItemHandler(foundItemService, matchingService, logger),
		Email:        rest.NewEmailHandler(matchingService, logger),
		Bookmarks:    rest.NewBookmarkHandler(bookmarkService, logger),
		Notification: rest.NewNotificationHandler(notificationService, logger),
		Socket:       realtime.NewHandler(hub, cfg.CORS.AllowedOrigins, logger),
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})

	return &components{
		router:  router,
		queue:   queue,
		hub:     hub,
		relay:   relay,
		limiter: limiter,
		metrics: m,
	}
}

// newMailTransport uses SMTP when credentials are configured and a logging
// transport otherwise, so local runs work without a mail account.
func newMailTransport(cfg config.MailConfig, logger *slog.Logger) mailqueue.Transport {
	if cfg.Username == "" {
		logger.Warn("MAIL_USERNAME not set, emails will be logged instead of sent")
		return mail.NewLogTransport(logger)
	}
	return mail.NewSMTPTransport(cfg)
}
