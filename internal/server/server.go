package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/FleaMarket_Go/internal/handler"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
	"github.com/osse101/FleaMarket_Go/internal/sse"
)

// Prices is what the server needs from the price cache.
type Prices interface {
	handler.PriceReader
	handler.ReadyChecker
}

// Options configures the listener and the auth layer.
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
}

// Deps are the read models the routes serve. DB and Events may be nil.
type Deps struct {
	DB      handler.Pinger
	Prices  Prices
	Offers  handler.OfferReader
	Traders handler.TraderReader
	Quotas  handler.QuotaReader
	Events  *sse.Hub
}

// Server is the market's ops and read surface.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and the http.Server around it.
func NewServer(opts Options, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       ReadTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter wires middleware and routes. Middleware runs outermost first.
func NewRouter(opts Options, deps Deps) chi.Router {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DB, deps.Prices))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/prices", func(r chi.Router) {
			r.Post("/quote", handler.HandleQuotePrice(deps.Prices))
			r.Get("/{tpl}", handler.HandleGetPrice(deps.Prices))
		})
		r.Route("/offers", func(r chi.Router) {
			r.Get("/", handler.HandleListOffers(deps.Offers))
			r.Get("/{id}", handler.HandleGetOffer(deps.Offers))
		})
		r.Route("/traders", func(r chi.Router) {
			r.Get("/", handler.HandleListTraders(deps.Traders))
			r.Get("/{id}/assort", handler.HandleGetAssort(deps.Traders))
		})
		r.Get("/quotas", handler.HandleGetQuota(deps.Quotas))
		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events))
		}
	})

	return r
}

// responseWriter captures the status code for request logs
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets streaming handlers push through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

func quietPath(path string) bool {
	return strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/readyz") ||
		strings.HasPrefix(path, "/metrics")
}

// loggingMiddleware tags each request with an id and logs start and completion.
// Probe and scrape paths are not logged.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if quietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start blocks serving until Stop is called.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
