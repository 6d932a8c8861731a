package http

import (
	"context"
	"time"

	"github.com/devhire/talenthub/internal/auth"
	"github.com/devhire/talenthub/internal/config"
	"github.com/devhire/talenthub/internal/http/handlers"
	"github.com/devhire/talenthub/internal/http/middlewares"
	"github.com/devhire/talenthub/internal/observability"
	"github.com/devhire/talenthub/internal/redisclient"
	"github.com/devhire/talenthub/internal/repo"
	"github.com/devhire/talenthub/internal/repo/memory"
	"github.com/devhire/talenthub/internal/repo/postgres"
	"github.com/devhire/talenthub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps carries the optional backends. Nil pool and nil redis mean the
// default all-in-memory setup.
type Deps struct {
	Config   config.Config
	Registry *prometheus.Registry
	Prom     *observability.Prom
	Pool     *pgxpool.Pool
	Redis    *redisclient.Client

	// RateLimitStore lets main pick memory vs redis windows.
	RateLimitStore middlewares.WindowStore
}

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(d Deps) *gin.Engine {
	if d.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware("talenthub"))
	r.Use(middlewares.RequestLogger())
	r.Use(d.Prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Config.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())

	guard := middlewares.NewOverloadGuard(d.Config.GlobalRPS, d.Config.GlobalBurst)
	guard.OnDenied = func() {
		d.Prom.RateLimitedTotal.WithLabelValues("global").Inc()
	}
	r.Use(guard.Middleware())

	limiter := middlewares.NewRateLimiter(d.Config.RateLimit, d.RateLimitStore)
	limiter.OnDenied = func(string) {
		d.Prom.RateLimitedTotal.WithLabelValues("client").Inc()
	}
	r.Use(limiter.Middleware(middlewares.KeyByIP))

	// health
	pings := map[string]handlers.PingFunc{}

	if d.Pool != nil {
		pings["postgres"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			return d.Pool.Ping(ctx)
		}
	}

	if d.Redis != nil {
		pings["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			return d.Redis.Ping(ctx)
		}
	}

	h := handlers.NewHealthHandler(pings)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// metrics + docs
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	r.GET("/swagger", handlers.SwaggerUI)
	r.StaticFile("/docs/openapi.yaml", "./docs/openapi.yaml")

	// wire up repositories; postgres when a pool is configured, memory otherwise
	var (
		candidatesRepo service.CandidatesStore
		employeesRepo  service.EmployeesStore
	)

	if d.Pool != nil {
		candidatesRepo = postgres.NewCandidatesRepo(d.Pool)
		employeesRepo = postgres.NewEmployeesRepo(d.Pool)
	} else {
		candidatesRepo = memory.NewCandidatesRepo()
		employeesRepo = memory.NewEmployeesRepo()
	}

	candidatesRepo = repo.NewInstrumentedCandidates(candidatesRepo, d.Prom)
	employeesRepo = repo.NewInstrumentedEmployees(employeesRepo, d.Prom)

	candidatesSvc := service.NewCandidatesService(candidatesRepo, employeesRepo)
	employeesSvc := service.NewEmployeesService(employeesRepo)

	candidatesHandler := handlers.NewCandidatesHandler(candidatesSvc)
	employeesHandler := handlers.NewEmployeesHandler(employeesSvc)

	jwtManager := auth.NewManager(d.Config.JWTSecret, d.Config.TokenTTL)
	authHandler := handlers.NewAuthHandler(jwtManager, d.Config.AdminEmail, d.Config.AdminPasswordHash, d.Config.TokenTTL)
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	r.POST("/auth/token", authHandler.Token)

	// candidate intake is open
	r.POST("/candidates", candidatesHandler.CreateCandidate)
	r.GET("/candidates", candidatesHandler.ListCandidates)
	r.GET("/candidates/stats", candidatesHandler.CandidateStats)
	r.GET("/candidates/:id", candidatesHandler.GetCandidateById)
	r.PUT("/candidates/:id", candidatesHandler.UpdateCandidate)
	r.DELETE("/candidates/:id", candidatesHandler.DeleteCandidate)
	r.POST("/candidates/:id/hire", authMW.RequireAuth(), candidatesHandler.HireCandidate)

	// employee records are admin territory
	r.GET("/employees", employeesHandler.ListEmployees)
	r.GET("/employees/:id", employeesHandler.GetEmployeeById)

	protected := r.Group("/employees", authMW.RequireAuth())
	protected.POST("", employeesHandler.CreateEmployee)
	protected.PUT("/:id", employeesHandler.UpdateEmployee)
	protected.DELETE("/:id", authMW.RequireRole("admin"), employeesHandler.DeleteEmployee)

	return r
}
