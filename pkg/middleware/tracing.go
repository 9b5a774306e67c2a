package middleware

import (
	"net/http"

	"go-frontier/pkg/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// TracingMiddleware opens one span per request, picking up any upstream
// trace context from the incoming headers. When telemetry is disabled
// the handler chain is returned untouched.
func TracingMiddleware(next http.Handler) http.Handler {
	if !config.GetBoolEnv("ENABLE_TELEMETRY", false) {
		return next
	}

	return otelhttp.NewHandler(next, "api-frontier",
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
		otelhttp.WithPropagators(otel.GetTextMapPropagator()),
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
