package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplecore/leave-engine-go/internal/handler/http/middleware"
	"github.com/peoplecore/leave-engine-go/internal/pkg/jwt"
)

func NewRouter(jwtService *jwt.Service, leaveHandler LeaveHandler, env string, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.SubmitRequest)
				r.Get("/my", leaveHandler.GetMyRequests)

				// Company-wide views and decisions
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole("admin", "manager"))
					r.Get("/", leaveHandler.ListRequests)
					r.Get("/summary", leaveHandler.Summary)
					r.Post("/{id}/status", leaveHandler.TransitionStatus)
					r.Post("/{id}/manager-action", leaveHandler.RecordManagerAction)
					r.Delete("/{id}", leaveHandler.DeleteRequest)
				})

				r.Get("/{id}", leaveHandler.GetRequest)
				r.Patch("/{id}", leaveHandler.UpdateRequest)
			})
		})
	})

	return r
}
