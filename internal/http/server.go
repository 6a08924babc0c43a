package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	applog "fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/query"
	"fintrack/internal/services"
	appweb "fintrack/web"
)

type Server struct {
	http.Server
	svc          *services.LedgerService
	facade       *query.Facade
	dashCache    cache.Cache[dashboardPayload]
	cacheJanitor *cache.Manager
	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	shutdownOnce sync.Once
}

// cacheCleanupInterval is how often expired dashboard entries are
// reclaimed when nothing touches them.
const cacheCleanupInterval = 10 * time.Minute

// Options tunes the server's cache and rate limiter. Zero values fall
// back to defaults.
type Options struct {
	RateLimitPerMinute int
	CacheSize          int
	CacheTTL           time.Duration
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, svc *services.LedgerService, facade *query.Facade, opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 100
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	mux := http.NewServeMux()

	dashCache := cache.NewLRUCache[dashboardPayload](opts.CacheSize, opts.CacheTTL)
	janitor := cache.NewManager()
	janitor.Register(dashCache)
	janitor.StartCleanup(cacheCleanupInterval)

	s := &Server{
		svc:          svc,
		facade:       facade,
		dashCache:    dashCache,
		cacheJanitor: janitor,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/transactions", s.withRateLimit(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withRateLimit(s.handleTransactionByID))
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/reset", s.withRateLimit(s.handleReset))

	// Pages and static assets from the embedded FS.
	if pages, err := fs.Sub(appweb.PagesFS, "pages"); err == nil {
		mux.Handle("/", http.FileServer(http.FS(pages)))
	} else {
		slog.Warn("Failed to mount embedded pages FS", applog.FieldError, err)
	}
	if static, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		cached := security.StaticAssetMiddleware(3600)
		mux.Handle("/static/", cached(http.StripPrefix("/static/", http.FileServer(http.FS(static)))))
	} else {
		slog.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(extractClientIP)
	s.tracer = tracer

	s.Server = http.Server{
		Addr:              addr,
		Handler:           tracer.Middleware(headers.Middleware(mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// withRateLimit throttles mutating requests per client IP. Reads stay
// unthrottled, the dashboard polls freely.
func (s *Server) withRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.limiter.Allow(extractClientIP(r)) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, extractClientIP(r),
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next(w, r)
	}
}

// Shutdown stops the cache janitor and rate limiter goroutines, then
// the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.cacheJanitor != nil {
			s.cacheJanitor.Stop()
		}
		if s.limiter != nil {
			s.limiter.Stop()
		}
		if s.tracer != nil {
			m := s.tracer.GetMetrics()
			slog.Info("Request totals at shutdown",
				"requests", m.TotalRequests,
				"avg_response_us", m.AverageResponseTime)
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
