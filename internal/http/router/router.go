package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/inventory-sheets/docs"
	"github.com/rogerio-castellano/inventory-sheets/internal/auth"
	"github.com/rogerio-castellano/inventory-sheets/internal/http/handlers"
	mw "github.com/rogerio-castellano/inventory-sheets/internal/http/middleware"
	"github.com/rogerio-castellano/inventory-sheets/internal/logger"
	"github.com/rogerio-castellano/inventory-sheets/web"
)

type Options struct {
	Logger      *logger.Logger
	Signer      *auth.Signer
	DefaultUser string

	// Limiter is optional. Strikes is consulted only when Limiter is set.
	Limiter mw.Limiter
	Strikes mw.StrikeTracker

	// Gatherer backs /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.DefaultUser == "" {
		opts.DefaultUser = "anonymous@local"
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(mw.RequestID(opts.Logger))
	r.Use(mw.Logging(opts.Logger))
	r.Use(mw.Recoverer(opts.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(mw.RateLimit(opts.Limiter, opts.Strikes, opts.Logger))
		}
		r.Use(mw.Identity(opts.Signer, opts.DefaultUser, opts.Logger))

		r.Get("/exec", handlers.ExecGetHandler)
		r.Post("/exec", handlers.ExecPostHandler)
	})

	r.Handle("/*", http.FileServer(http.FS(web.Static())))
	return r
}
