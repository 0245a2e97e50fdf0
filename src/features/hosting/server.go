package hosting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/songsheet/src/features/catalog"
	"github.com/contre95/songsheet/src/features/collections"
	"github.com/contre95/songsheet/src/features/config"
	"github.com/contre95/songsheet/src/features/player"
	"github.com/contre95/songsheet/src/features/statistics"
	"github.com/contre95/songsheet/src/features/ui"
	"github.com/contre95/songsheet/src/infra/telemetry"
	"github.com/contre95/songsheet/src/music"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the collections store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the feature services the server exposes.
type Services struct {
	Catalog     *catalog.Service
	Collections *collections.Service
	Player      *player.Service
	Statistics  *statistics.Service
}

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, configPath string, services Services, store Pinger, metrics *telemetry.Collectors, gatherer prometheus.Gatherer) *Server {
	serverCfg := cfg.Get().Server
	engine := html.New(orDefault(serverCfg.Views, "./views"), ".html")
	engine.Debug(cfg.Get().Logger.Level == "debug")
	engine.AddFunc("isDebug", func() bool {
		return cfg.Get().Logger.HTMXDebug
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})
	engine.AddFunc("languageClass", music.LanguageClass)
	engine.AddFunc("title", func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	})
	engine.AddFunc("percent", func(width float64) string {
		return fmt.Sprintf("%.0f%%", width)
	})

	app := fiber.New(fiber.Config{
		Views:     engine,
		Immutable: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				slog.Error("Internal Server Error", "error", err)
			}
			return c.Status(code).SendString(err.Error())
		},
		AppName:               cfg.Get().Site.Name,
		DisableStartupMessage: true,
		EnablePrintRoutes:     serverCfg.PrintRoutes,
	})

	app.Use(HTMXMiddleware())
	if cfg.Get().Logger.HTMXDebug {
		app.Use(HTMXDebugMiddleware())
	}
	app.Use(LogAllRequestsMiddleware())
	app.Use(MetricsMiddleware(metrics))

	app.Static("/", orDefault(serverCfg.Public, "./public"))
	app.Get("/health", HealthHandler(store))
	if metricsCfg := cfg.Get().Metrics; metricsCfg.Enabled && gatherer != nil {
		app.Get(orDefault(metricsCfg.Path, "/metrics"), adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	ui.RegisterRoutes(app, ui.NewHandler(cfg, services.Catalog, services.Collections))
	config.RegisterRoutes(app, cfg, configPath)
	catalog.RegisterRoutes(app, services.Catalog, services.Collections)
	collections.RegisterRoutes(app, services.Collections)
	player.RegisterRoutes(app, services.Player)
	statistics.RegisterRoutes(app, services.Statistics)

	return &Server{app: app, port: serverCfg.Port}
}

// HealthHandler answers OK while the collections store is reachable.
func HealthHandler(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				slog.Warn("Health check failed", "error", err)
				return c.Status(fiber.StatusServiceUnavailable).SendString("database unavailable")
			}
		}
		return c.SendString("OK")
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// App exposes the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
