// Command seed bootstraps the database: -admin creates or promotes an
// administrator, -sample loads demo profiles and posts.
//
//	go run ./cmd/seed -admin -email root@example.com -username root -password s3cret
//	go run ./cmd/seed -sample
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	mongodb "github.com/yesser147/linkedinSocialMedia/internal/infrastructure/db/mongo"
	"github.com/yesser147/linkedinSocialMedia/internal/pkg/config"
	"github.com/yesser147/linkedinSocialMedia/internal/seed"
	"github.com/yesser147/linkedinSocialMedia/pkg/logger"
)

const disconnectTimeout = 10 * time.Second

func main() {
	var (
		admin    = flag.Bool("admin", false, "Create or promote an administrator")
		sample   = flag.Bool("sample", false, "Load sample profiles and posts")
		username = flag.String("username", "admin", "Administrator username (new accounts only)")
		email    = flag.String("email", "", "Administrator email")
		password = flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "Administrator password (new accounts only)")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "socialsphere-seed"})

	if !*admin && !*sample {
		flag.Usage()
		os.Exit(2)
	}

	in := seed.AdminInput{Username: *username, Email: *email, Password: *password}
	if err := run(cfg, log, *admin, *sample, in); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger, admin, sample bool, in seed.AdminInput) error {
	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongodb.NewUserRepository(db)
	posts := mongodb.NewPostRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, posts); err != nil {
		return err
	}

	s := seed.New(users, posts, logger.Component("seed"))
	if admin {
		if in.Email == "" {
			return errors.New("-email is required with -admin")
		}
		if _, err := s.Admin(ctx, in); err != nil {
			return err
		}
	}
	if sample {
		if _, _, err := s.Samples(ctx); err != nil {
			return err
		}
		log.Info().Str("password", seed.SamplePassword).Msg("sample accounts share this password")
	}
	return nil
}
