package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/GregMSThompson/flowadmin/internal/handlers"
	"github.com/GregMSThompson/flowadmin/internal/middleware"
)

type Options struct {
	AllowedOrigins []string
	RateLimit      int // requests per minute per IP, 0 disables
}

func NewRouter(deps *handlers.Deps, auth *middleware.Middleware, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Prefer", "Range"},
		ExposedHeaders:   []string{"Content-Range"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.RateLimit > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cfh := handlers.NewConfigureHandlers(deps)
	wph := handlers.NewWebpageHandlers(deps)
	dch := handlers.NewDocumentHandlers(deps)
	ush := handlers.NewUserHandlers(deps)
	nth := handlers.NewNotificationHandlers(deps)
	uph := handlers.NewUploadHandlers(deps)
	tbh := handlers.NewTableHandlers(deps)

	// public
	r.Mount("/configure", cfh.ConfigureRoutes())
	r.Mount("/webpages", wph.WebpageRoutes())

	// signed-in users
	r.Group(func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		r.Mount("/records", dch.RecordRoutes())
		if deps.UploadSvc != nil {
			r.Mount("/uploads", uph.UploadRoutes())
		}
		if deps.SupabaseProxy != nil {
			r.Mount("/supabase", deps.SupabaseProxy)
		}
		if deps.TableSvc != nil {
			r.Mount("/tables", tbh.RecordRoutes())
		}
	})

	// admins
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		r.Use(auth.RequireAdmin)
		r.Mount("/auth", ush.UserRoutes())
		r.Mount("/notifications", nth.NotificationRoutes())
		if deps.TableSvc != nil {
			r.Mount("/tables", tbh.AdminRoutes())
		}
		r.Mount("/", dch.AdminRoutes())
	})

	return r
}
