package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/volunteer-connect-backend/api"
	"github.com/rpupo63/volunteer-connect-backend/changefeed"
	"github.com/rpupo63/volunteer-connect-backend/config"
	"github.com/rpupo63/volunteer-connect-backend/database"
	"github.com/rpupo63/volunteer-connect-backend/identity"
	"github.com/rpupo63/volunteer-connect-backend/lifecycle"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"github.com/rpupo63/volunteer-connect-backend/services"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file")
	}
	c := config.New()

	db, err := database.Open(database.ConnectionConfig{
		Host:        config.GetString(c, "DB_HOST", "localhost"),
		User:        config.GetString(c, "DB_USER", "postgres"),
		Password:    config.GetString(c, "DB_PASSWORD", ""),
		Name:        config.GetString(c, "DB_NAME", "volunteer_connect"),
		Port:        config.GetString(c, "DB_PORT", "5432"),
		SSLMode:     config.GetString(c, "DB_SSLMODE", "require"),
		ReplicaDSNs: config.GetList(c, "DB_REPLICA_DSNS"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReport(db)
		return
	}

	if config.GetBool(c, "AUTO_MIGRATE", false) {
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating database")
		}
		log.Info().Msg("Database schema migrated")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Without Redis the API still serves requests, but writes are not announced and
	// /projects/stream answers 502.
	var publisher database.Publisher
	var subscriber api.Subscriber
	if addr := config.GetString(c, "REDIS_ADDR", ""); addr != "" {
		client, err := changefeed.NewClient(ctx, addr, config.GetString(c, "REDIS_PASSWORD", ""), config.GetInt(c, "REDIS_DB", 0))
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to redis")
		}
		defer client.Close()
		feed := changefeed.New(client)
		publisher, subscriber = feed, feed
	} else {
		log.Warn().Msg("REDIS_ADDR not set, change feed disabled")
	}

	store := database.New(db, publisher)

	verifier, err := newVerifier(ctx, c)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing identity provider")
	}

	var notifier lifecycle.Notifier
	if sender := services.NewEmailSender(c); sender != nil {
		notifier = services.NewEmailNotifier(sender, store.ProfileRepo(), config.GetString(c, "APP_BASE_URL", ""))
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(store, verifier, subscriber, notifier)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newVerifier picks the identity provider named by AUTH_MODE.
func newVerifier(ctx context.Context, c map[string]string) (identity.Verifier, error) {
	switch mode := strings.ToLower(config.GetString(c, "AUTH_MODE", "firebase")); mode {
	case "firebase":
		client, err := identity.InitializeFirebase(ctx, config.GetString(c, "FIREBASE_CREDENTIALS_PATH", ""))
		if err != nil {
			return nil, err
		}
		return identity.NewFirebaseVerifier(client), nil
	case "jwt":
		verifier, err := identity.NewJWTVerifier(config.GetString(c, "JWT_SECRET", ""))
		if err != nil {
			return nil, err
		}
		return verifier, nil
	default:
		return nil, fmt.Errorf("unsupported AUTH_MODE %q", mode)
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
