// Package server boots the full application: config, database, cache,
// storage, queue workers, event listeners, scheduler, gRPC health endpoint
// and the HTTP API, then blocks until shutdown.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawmart/pawmart/app/jobs"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/app/routes"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/config"
	"github.com/pawmart/pawmart/pkg/cache"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/event"
	"github.com/pawmart/pawmart/pkg/grpcserv"
	"github.com/pawmart/pawmart/pkg/logger"
	"github.com/pawmart/pawmart/pkg/metrics"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/queue"
	"github.com/pawmart/pawmart/pkg/reqid"
	"github.com/pawmart/pawmart/pkg/router"
	"github.com/pawmart/pawmart/pkg/schedule"
	"github.com/pawmart/pawmart/pkg/storage"
	"github.com/pawmart/pawmart/pkg/workerpool"
	"github.com/pawmart/pawmart/pkg/ws"
)

// Start boots every subsystem and serves until SIGINT or SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoURI(); uri != "" {
		if _, err := logger.EnableMongoSink(uri, config.MongoLogDatabase(), config.MongoLogCollection()); err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache disabled", "error", err)
	}
	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.UseDB(database.DB)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	jobs.RegisterAll()
	queue.StartWorkers(ctx, config.QueueWorkers())

	event.UsePool(workerpool.New(config.EventWorkers()))

	hub := ws.NewHub()
	go hub.Run()
	registerListeners(hub)

	registerSchedules()
	go schedule.Start(ctx)

	if port := config.GRPCPort(); port != "" {
		ready := func() bool {
			sqlDB, err := database.DB.DB()
			return err == nil && sqlDB.Ping() == nil
		}
		srv, _, err := grpcserv.Start(port, ready)
		if err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		defer grpcserv.Stop(srv)
	}

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.RegisterAPI(r, hub)
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", healthHandler)

	// Local disk uploads are served directly; S3 serves its own URLs.
	if config.StorageDefault() == "local" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot())))
		r.HandleFunc("/storage/*", fs.ServeHTTP)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// registerListeners bridges domain events onto the queue and the websocket
// feed. Services stay ignorant of both.
func registerListeners(hub *ws.Hub) {
	event.Listen("order.placed", func(payload interface{}) {
		placed, ok := payload.(services.OrderPlaced)
		if !ok {
			return
		}
		if err := queue.Dispatch(&jobs.OrderConfirmationJob{OrderID: placed.OrderID}); err != nil {
			logger.Warn("dispatch order confirmation", "order_id", placed.OrderID, "error", err)
		}
		msg, _ := json.Marshal(map[string]interface{}{
			"event":  "order.placed",
			"number": placed.Number,
			"total":  placed.Total.StringFixed(2),
		})
		hub.SendTo(placed.UserID, msg)
	})

	event.Listen("order.status_changed", func(payload interface{}) {
		changed, ok := payload.(services.StatusChanged)
		if !ok {
			return
		}
		hub.SendTo(changed.UserID, changed.FeedMessage())
	})
}

// registerSchedules sets up recurring background work.
func registerSchedules() {
	appointments := services.NewAppointmentService(
		repositories.NewAppointmentRepository(database.DB),
		repositories.NewPetRepository(database.DB),
		repositories.NewUserRepository(database.DB),
	)

	schedule.Daily().Name("appointment-reminders").WithoutOverlapping().Run(func() {
		due, err := appointments.DueTomorrow(time.Now())
		if err != nil {
			logger.Warn("load due appointments", "error", err)
			return
		}
		for _, appt := range due {
			if err := queue.Dispatch(&jobs.AppointmentReminderJob{AppointmentID: appt.ID}); err != nil {
				logger.Warn("dispatch appointment reminder", "appointment_id", appt.ID, "error", err)
			}
		}
	})
}

// healthHandler reports liveness plus database reachability.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	code := http.StatusOK
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
