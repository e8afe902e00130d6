// Package server boots the tartufo HTTP service: config, database, cache,
// session store, schema, seed data, middleware stack and routes.
package server

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/jobs"
	"github.com/casatartufo/tartufo/app/models"
	"github.com/casatartufo/tartufo/app/repositories"
	"github.com/casatartufo/tartufo/app/routes"
	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/config"
	"github.com/casatartufo/tartufo/database/seeders"
	"github.com/casatartufo/tartufo/pkg/cache"
	"github.com/casatartufo/tartufo/pkg/database"
	"github.com/casatartufo/tartufo/pkg/logger"
	"github.com/casatartufo/tartufo/pkg/metrics"
	"github.com/casatartufo/tartufo/pkg/middleware"
	"github.com/casatartufo/tartufo/pkg/queue"
	"github.com/casatartufo/tartufo/pkg/reqid"
	"github.com/casatartufo/tartufo/pkg/response"
	"github.com/casatartufo/tartufo/pkg/router"
	"github.com/casatartufo/tartufo/pkg/schedule"
	"github.com/casatartufo/tartufo/pkg/session"
)

// Start runs the HTTP server until it fails or the process is killed.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Redis is optional: without it sessions and the job queue live in
	// process memory and the catalog cache degrades to a permanent miss.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, using in-memory sessions and queue", "error", err)
		session.Use(session.NewMemoryStore())
	} else {
		session.Use(session.NewRedisStore())
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	if err := prepareDatabase(database.DB); err != nil {
		return err
	}

	startBackground(context.Background(), database.DB)

	handler := BuildHandler(database.DB)

	addr := ":" + config.AppPort()
	logger.Info("tartufo listening", "addr", addr, "env", config.AppEnv())
	return http.ListenAndServe(addr, handler)
}

// prepareDatabase ensures the schema exists and the fixed catalog and slot
// matrix are seeded.
func prepareDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.DeliverySlot{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return err
	}
	return seeders.RunAll(db)
}

// startBackground boots the in-process machinery that runs alongside the
// HTTP listener: queue workers for confirmation emails and the scheduler
// that keeps the catalog cache warm.
func startBackground(ctx context.Context, db *gorm.DB) {
	queue.UseDB(db)
	jobs.RegisterListeners()
	queue.StartWorkers(ctx, 4)

	catalog := services.NewCatalogService(
		repositories.NewProductRepository(db),
		repositories.NewDeliverySlotRepository(db),
	)
	schedule.Every(4).Minutes().
		Name("catalog-cache-warm").
		WithoutOverlapping().
		Run(func() {
			if err := catalog.WarmCache(); err != nil {
				logger.Warn("catalog cache warm failed", "error", err)
			}
		})
	schedule.Start(ctx)
}

// BuildHandler constructs the full HTTP handler: global middleware stack,
// operational endpoints and the API routes. Exposed so tests can run the
// whole surface against an in-memory database.
func BuildHandler(db *gorm.DB) http.Handler {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the goroutine
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. Session           — load/create the session cookie
	//  6. CORS              — set CORS headers
	//  7. Rate limiter      — reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	routes.RegisterAPI(r, db)

	return r.Handler()
}
