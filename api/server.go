package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/volunteer-connect-backend/config"
	"github.com/rpupo63/volunteer-connect-backend/identity"
	"github.com/rpupo63/volunteer-connect-backend/lifecycle"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer wires the router. feed and notifier may be nil: without a feed the stream
// endpoint is unavailable, without a notifier no e-mails are sent.
func NewServer(store Store, verifier identity.Verifier, feed Subscriber, notifier lifecycle.Notifier) (Server, error) {
	if store == nil || verifier == nil {
		return Server{}, fmt.Errorf("store and identity verifier are required")
	}

	c := config.New()

	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(store, verifier,
		withConfig(c),
		withStartupTime(startupTime),
		withFeed(feed),
		withNotifier(notifier),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180),
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180),
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	feed        Subscriber
	notifier    lifecycle.Notifier
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withFeed(feed Subscriber) func(*router) {
	return func(r *router) {
		r.feed = feed
	}
}

func withNotifier(notifier lifecycle.Notifier) func(*router) {
	return func(r *router) {
		r.notifier = notifier
	}
}

func newRouter(store Store, verifier identity.Verifier, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	keepAlive := config.GetSeconds(router.config, "STREAM_KEEPALIVE_SECONDS", 15)
	handlers := initializeHandlers(store, router.feed, router.notifier, router.startupTime, keepAlive)
	authMiddleware := newAuthMiddleware(verifier)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
