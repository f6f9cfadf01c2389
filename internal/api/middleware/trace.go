package middleware

import (
	"log/slog"
	"net/http"

	"github.com/WandLZhang/chinese-conversation/internal/api/shared"
	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context, along with a
// logger carrying that trace ID so downstream handlers log correlated
// entries via logger.FromContextOrDefault.
// This middleware should be applied early in the middleware chain to ensure
// that all subsequent handlers have access to the trace ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
