package middleware

import (
	"fmt"
	"net/http"

	"houserental/config"
	"houserental/infras/otel"
	"houserental/shared/cache"
	"houserental/shared/constant"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	ua "github.com/mssola/user_agent"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel    otel.Otel
	config  *config.Config
	cache   cache.RedisCache
	limiter *localLimiter
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:    otel,
		config:  config,
		cache:   cache,
		limiter: newLocalLimiter(),
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routePattern(r)
		spanName := fmt.Sprintf("%s %s", r.Method, route)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		agent := ua.New(a.getUA(r))
		browser, version := agent.Browser()

		scope.SetAttributes(map[string]any{
			"app.name":           a.config.App.Name,
			"http.path":          r.URL.Path,
			"http.route":         route,
			"http.method":        r.Method,
			"http.user_agent":    agent.UA(),
			"http.host":          r.Host,
			"http.source":        a.getClientIP(r),
			"http.request_id":    r.Header.Get(constant.RequestHeaderRequestID),
			"user_agent.browser": browser + " " + version,
			"user_agent.os":      agent.OS(),
			"user_agent.mobile":  agent.Mobile(),
			"user_agent.bot":     agent.Bot(),
		})

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.status_code":   ww.Status(),
			"http.response_size": ww.BytesWritten(),
		})

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s responded %d", spanName, ww.Status()))
		}
	})
}

// routePattern resolves the matched chi pattern, falling back to the raw path.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return r.URL.Path
	}

	if pattern := rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path); pattern != "" {
		return pattern
	}

	return r.URL.Path
}
