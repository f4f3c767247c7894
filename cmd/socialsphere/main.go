package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/yesser147/linkedinSocialMedia/docs"
	"github.com/yesser147/linkedinSocialMedia/internal/api"
	"github.com/yesser147/linkedinSocialMedia/internal/api/metrics"
	"github.com/yesser147/linkedinSocialMedia/internal/api/view"
	"github.com/yesser147/linkedinSocialMedia/internal/core/service"
	mongodb "github.com/yesser147/linkedinSocialMedia/internal/infrastructure/db/mongo"
	redisdb "github.com/yesser147/linkedinSocialMedia/internal/infrastructure/db/redis"
	"github.com/yesser147/linkedinSocialMedia/internal/infrastructure/http/handlers"
	"github.com/yesser147/linkedinSocialMedia/internal/infrastructure/mail"
	"github.com/yesser147/linkedinSocialMedia/internal/infrastructure/queue"
	"github.com/yesser147/linkedinSocialMedia/internal/infrastructure/storage"
	"github.com/yesser147/linkedinSocialMedia/internal/pkg/config"
	"github.com/yesser147/linkedinSocialMedia/internal/pkg/session"
	"github.com/yesser147/linkedinSocialMedia/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       SocialSphere API
// @version                     1.0
// @description                 Professional social network: accounts, profiles, connections, messaging, posts and jobs.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        jwt
func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "socialsphere",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	users := mongodb.NewUserRepository(db)
	connections := mongodb.NewConnectionRepository(db)
	conversations := mongodb.NewConversationRepository(db)
	messages := mongodb.NewMessageRepository(db)
	posts := mongodb.NewPostRepository(db)
	comments := mongodb.NewCommentRepository(db)
	jobs := mongodb.NewJobRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, connections, conversations, messages, posts, comments, jobs); err != nil {
		return err
	}

	// --- Background work ---
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Workers, metrics.TaskObserver{}, logger.Component("queue"))
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	local, err := storage.NewLocal(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return err
	}
	files := storage.WithDeferredRemoval(local, dispatcher)

	mailer := mail.NewSMTPSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.Sender(),
	})

	// --- Services ---
	issuer := session.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisdb.NewThrottle(rdb, cfg.Limits.ResetMailLimit, time.Hour)
	views := redisdb.NewViewDeduper(rdb, cfg.Limits.ProfileViewWindow)

	svc := api.Services{
		Auth:        service.NewAuthService(users, files, mailer, dispatcher, throttle, issuer, cfg.BaseURL, logger.Component("auth")),
		Profiles:    service.NewProfileService(users, connections, files, views, logger.Component("profile")),
		Connections: service.NewConnectionService(users, connections, logger.Component("connection")),
		Messaging:   service.NewMessagingService(users, conversations, messages, logger.Component("messaging")),
		Posts:       service.NewPostService(users, posts, comments, files, logger.Component("post")),
		Jobs:        service.NewJobService(users, jobs, conversations, messages, cfg.BaseURL, logger.Component("job")),
		Admins:      users,
		Blocks:      users,
	}

	renderer, err := view.New()
	if err != nil {
		return err
	}

	e := api.NewRouter(ctx, svc, api.Options{
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       issuer.TTL(),
		SecureCookie:   cfg.IsProduction(),
		RateLimitRPS:   cfg.Limits.RateLimitRPS,
		RateLimitBurst: cfg.Limits.RateLimitBurst,
		Renderer:       renderer,
		Checks:         []handlers.Check{handlers.MongoCheck(db), handlers.RedisCheck(rdb)},
	}, logger.Component("http"))

	// --- Serve ---
	addr := fmt.Sprintf(":%s", cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	return nil
}
