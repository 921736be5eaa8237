package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/rendezvous/internal/infrastructure/configs"
	"github.com/hilthontt/rendezvous/internal/infrastructure/logging"
	"github.com/hilthontt/rendezvous/internal/infrastructure/metrics"
	healthHandler "github.com/hilthontt/rendezvous/internal/presentation/handler/health"
	signalHandler "github.com/hilthontt/rendezvous/internal/presentation/handler/signal"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Application struct {
	config        configs.Config
	signalHandler signalHandler.Handler
	healthHandler healthHandler.Handler
	logger        logging.Logger
	metrics       *metrics.Metrics
}

func NewApplication(
	config configs.Config,
	signalHandler signalHandler.Handler,
	healthHandler healthHandler.Handler,
	logger logging.Logger,
	m *metrics.Metrics,
) *Application {
	return &Application{
		config:        config,
		signalHandler: signalHandler,
		healthHandler: healthHandler,
		logger:        logger,
		metrics:       m,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(app.loggerMiddleware)
	r.Use(app.prometheusMiddleware)
	r.Use(app.enableCors)

	r.Post("/create", app.signalHandler.CreateRoomHandler)
	r.Get("/join/{code}", app.signalHandler.GetOfferHandler)
	r.Post("/answer/{code}", app.signalHandler.SubmitAnswerHandler)
	r.Get("/answer/{code}", app.signalHandler.GetAnswerHandler)

	r.Get("/health", app.healthHandler.GetHealth)
	r.Get("/", app.healthHandler.GetRoot)

	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(r, "rendezvous")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
