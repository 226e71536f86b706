package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"evently/internal/config"
	"evently/internal/http/handlers"
	"evently/internal/http/middlewares"
	"evently/internal/observability"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// RouterDeps carries the constructed handlers into the route table so
// wiring stays in main.
type RouterDeps struct {
	Events   *handlers.EventsHandler
	Bookings *handlers.BookingsHandler
	Health   *handlers.HealthHandler
	Prom     *observability.Prom
	Metrics  nethttp.Handler
}

func NewRouter(cfg config.Config, log *slog.Logger, deps RouterDeps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(otelgin.Middleware("evently-api"))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.NewRateLimiter(100, time.Minute).Middleware())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())

	r.GET("/healthz", deps.Health.Healthz)
	r.GET("/readyz", deps.Health.Readyz)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	events := r.Group("/events")
	{
		events.GET("", deps.Events.ListEvents)
		events.POST("", deps.Events.CreateEvent)
		events.GET("/:slug", deps.Events.GetEventBySlug)
		events.PUT("/:id", deps.Events.UpdateEvent)
		events.DELETE("/:id", deps.Events.DeleteEvent)

		events.POST("/:id/bookings", deps.Bookings.CreateBooking)
		events.GET("/:slug/bookings", deps.Bookings.ListForEvent)
	}

	bookings := r.Group("/bookings")
	{
		bookings.PUT("/:id", deps.Bookings.UpdateBooking)
		bookings.DELETE("/:id", deps.Bookings.DeleteBooking)
	}

	return r
}
