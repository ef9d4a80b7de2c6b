package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aeg58/crm-v2/internal/config"
	"github.com/aeg58/crm-v2/internal/http-server/handlers/auth"
	"github.com/aeg58/crm-v2/internal/http-server/handlers/customer"
	"github.com/aeg58/crm-v2/internal/http-server/handlers/dashboard"
	"github.com/aeg58/crm-v2/internal/http-server/handlers/errors"
	"github.com/aeg58/crm-v2/internal/http-server/handlers/health"
	"github.com/aeg58/crm-v2/internal/http-server/handlers/lead"
	"github.com/aeg58/crm-v2/internal/http-server/handlers/message"
	"github.com/aeg58/crm-v2/internal/http-server/handlers/webhook"
	"github.com/aeg58/crm-v2/internal/http-server/middleware/authenticate"
	"github.com/aeg58/crm-v2/internal/http-server/middleware/timeout"
	"github.com/aeg58/crm-v2/internal/lib/sl"
	"github.com/aeg58/crm-v2/internal/metrics"
	"github.com/aeg58/crm-v2/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	webhook.Core
	customer.Core
	message.Core
	lead.Core
	dashboard.Core
	auth.Core
	health.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   conf.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", webhook.SecretHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(metrics.Metrics)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/health", health.Health(log, handler))
	router.Handle("/metrics", promhttp.Handler())

	// WebSocket connections are long-lived, so no request timeout here.
	router.Get("/api/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, handler, log, w, r)
	})

	router.Route("/api/webhook", func(r chi.Router) {
		r.Use(timeout.Timeout(10))
		r.Post("/inbound", webhook.Inbound(log, conf.Webhook.Secret, handler))
		r.Post("/test", webhook.Test(log, handler))
	})

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeout.Timeout(10))

		v1.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register(log, handler))
			r.Post("/login", auth.Login(log, handler))
		})

		v1.Group(func(protected chi.Router) {
			protected.Use(authenticate.New(log, handler))

			protected.Route("/customers", func(r chi.Router) {
				r.Post("/", customer.Create(log, handler))
				r.Get("/", customer.List(log, handler))
				r.Get("/{id}", customer.Get(log, handler))
				r.Put("/{id}", customer.Update(log, handler))
				r.Delete("/{id}", customer.Delete(log, handler))
			})

			protected.Route("/messages", func(r chi.Router) {
				r.Post("/", message.Create(log, handler))
				r.Get("/", message.List(log, handler))
				r.Get("/{id}", message.Get(log, handler))
				r.Put("/{id}", message.Update(log, handler))
				r.Delete("/{id}", message.Delete(log, handler))
			})

			protected.Route("/leads", func(r chi.Router) {
				r.Post("/", lead.Create(log, handler))
				r.Get("/", lead.List(log, handler))
				r.Get("/{id}", lead.Get(log, handler))
				r.Put("/{id}", lead.Update(log, handler))
				r.Delete("/{id}", lead.Delete(log, handler))
			})

			protected.Get("/dashboard/stats", dashboard.Stats(log, handler))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
