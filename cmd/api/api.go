package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trustboard/internal/auth"
	"trustboard/internal/discussion"
	"trustboard/internal/metrics"
	"trustboard/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type application struct {
	config        config
	logger        *zap.SugaredLogger
	board         *discussion.Board
	inbox         *discussion.Inbox
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	metrics       *metrics.Metrics
	registry      *prometheus.Registry
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	driver         string
	addr           string
	maxOpenConns   int32
	maxIdleTime    string
	migrateOnStart bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.MetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Route("/questions", func(r chi.Router) {
				r.Get("/", app.listQuestionsHandler)
				r.Post("/", app.createQuestionHandler)

				r.Route("/{questionID}", func(r chi.Router) {
					r.Get("/", app.getQuestionHandler)
					r.Patch("/", app.updateQuestionHandler)
					r.Delete("/", app.deleteQuestionHandler)

					r.Get("/answers", app.listAnswersHandler)
					r.Post("/answers", app.createAnswerHandler)
				})
			})

			r.Route("/answers/{answerID}", func(r chi.Router) {
				r.Get("/", app.getAnswerHandler)
				r.Patch("/", app.updateAnswerHandler)
				r.Delete("/", app.deleteAnswerHandler)
				r.Put("/accept", app.toggleAcceptedHandler)
				r.Put("/correct", app.toggleCorrectHandler)

				r.Get("/replies", app.listRepliesHandler)
				r.Post("/replies", app.createReplyHandler)
			})

			r.Route("/replies/{replyID}", func(r chi.Router) {
				r.Get("/", app.getReplyHandler)
				r.Patch("/", app.updateReplyHandler)
				r.Delete("/", app.deleteReplyHandler)
			})

			r.Route("/trust", func(r chi.Router) {
				r.Get("/", app.listTrustedHandler)
				r.Delete("/", app.clearTrustedHandler)
				r.Get("/{reviewer}", app.isTrustedHandler)
				r.Put("/{reviewer}", app.addTrustedHandler)
				r.Delete("/{reviewer}", app.removeTrustedHandler)
			})
			r.Get("/trusters", app.listTrustersHandler)

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", app.inboxHandler)
				r.Post("/", app.sendMessageHandler)
				r.Get("/{messageID}", app.getMessageHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)
	return nil
}
