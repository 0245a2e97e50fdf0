package hosting

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/contre95/songsheet/src/infra/telemetry"
	"github.com/gofiber/fiber/v2"
)

var htmxRequestHeaders = []string{
	"HX-Request",
	"HX-Trigger",
	"HX-Trigger-Name",
	"HX-Target",
	"HX-Current-URL",
	"HX-Boosted",
	"HX-History-Restore-Request",
}

var htmxResponseHeaders = []string{
	"HX-Location",
	"HX-Push-Url",
	"HX-Redirect",
	"HX-Refresh",
	"HX-Reswap",
	"HX-Retarget",
	"HX-Trigger",
	"HX-Trigger-After-Settle",
	"HX-Trigger-After-Swap",
}

func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// HTMXMiddleware logs HTMX requests with their targets
func HTMXMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if isHTMX(c) {
			slog.Debug("HTMX request",
				"method", c.Method(),
				"path", c.Path(),
				"status", c.Response().StatusCode(),
				"duration", time.Since(start).String(),
				"hx_trigger", c.Get("HX-Trigger"),
				"hx_target", c.Get("HX-Target"),
				"hx_current_url", c.Get("HX-Current-URL"),
			)
		}
		return err
	}
}

// HTMXDebugMiddleware dumps the HTMX headers of every request and response
func HTMXDebugMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isHTMX(c) {
			return c.Next()
		}
		slog.Debug("HTMX request received", "method", c.Method(), "path", c.Path(), "headers", requestHeaders(c))
		err := c.Next()
		if err == nil {
			slog.Debug("HTMX response sent", "status", c.Response().StatusCode(), "response_headers", responseHeaders(c))
		}
		return err
	}
}

func requestHeaders(c *fiber.Ctx) map[string]string {
	headers := make(map[string]string)
	for _, header := range htmxRequestHeaders {
		if value := c.Get(header); value != "" {
			headers[header] = value
		}
	}
	return headers
}

func responseHeaders(c *fiber.Ctx) map[string]string {
	headers := make(map[string]string)
	for _, header := range htmxResponseHeaders {
		if value := c.Response().Header.Peek(header); len(value) > 0 {
			headers[header] = string(value)
		}
	}
	return headers
}

// LogAllRequestsMiddleware logs all requests, errors at error level
func LogAllRequestsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestType := "normal"
		if isHTMX(c) {
			requestType = "htmx"
		}

		err := c.Next()

		status := c.Response().StatusCode()
		attrs := []any{
			"type", requestType,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start).String(),
		}
		switch {
		case status >= 500:
			slog.Error("HTTP request", append(attrs, "error", err)...)
		case status >= 400:
			slog.Warn("HTTP request", attrs...)
		default:
			slog.Debug("HTTP request", attrs...)
		}
		return err
	}
}

// MetricsMiddleware observes request latency by route template.
func MetricsMiddleware(metrics *telemetry.Collectors) fiber.Handler {
	if metrics == nil {
		metrics = telemetry.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		metrics.Requests.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
