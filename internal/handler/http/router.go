package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/worktide-hr/absence-backend-go/internal/config"
	"github.com/worktide-hr/absence-backend-go/internal/handler/http/middleware"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg config.AppConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	absenceHandler AbsenceHandler,
	adminHandler AdminHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "absence-backend"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", absenceHandler.SubmitRequest)
				r.Get("/mine", absenceHandler.GetMyRequests)
				r.Get("/pending", absenceHandler.GetPendingRequests)
				r.Get("/days-count", absenceHandler.CountDays)

				r.Route("/{category}/{id}", func(r chi.Router) {
					r.Get("/", absenceHandler.GetRequest)
					r.Post("/cancel", absenceHandler.CancelRequest)
					r.Post("/respond", absenceHandler.RespondRequest)
				})
			})

			r.Get("/balance", absenceHandler.GetMyBalance)
			r.Get("/schedule", absenceHandler.GetSchedule)
			r.Get("/absence-types", absenceHandler.ListTypes)
			r.Get("/holidays", absenceHandler.ListHolidays)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/absence-types", func(r chi.Router) {
					r.Post("/", adminHandler.CreateType)
					r.Put("/{id}", adminHandler.UpdateType)
					r.Delete("/{id}", adminHandler.DeleteType)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Post("/", adminHandler.CreateHoliday)
					r.Delete("/{id}", adminHandler.DeleteHoliday)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", adminHandler.ListUsers)
					r.Put("/{id}/allotment", adminHandler.UpdateAllotment)
					r.Get("/{id}/approvers", adminHandler.ListApprovers)
				})

				r.Route("/approvers", func(r chi.Router) {
					r.Post("/", adminHandler.AssignApprover)
					r.Delete("/{subordinateID}/{approverID}", adminHandler.RemoveApprover)
				})
			})
		})
	})

	return r
}
