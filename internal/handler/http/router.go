package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/stafftrack/workforce-backend-go/internal/handler/http/middleware"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Attendance AttendanceHandler
	Worker     WorkerHandler
	Department DepartmentHandler
	Advance    AdvanceHandler
	Leave      LeaveHandler
	Settings   SettingsHandler
	Salary     SalaryHandler
}

func NewRouter(jwtService jwt.Service, env string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch", h.Attendance.Punch)
				r.Get("/workers/{workerID}/report", h.Attendance.WorkerReport)
			})

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", h.Worker.List)
				r.Get("/{workerID}", h.Worker.Get)
				r.Get("/{workerID}/advances", h.Advance.ListByWorker)
				r.Get("/{workerID}/leaves", h.Leave.ListByWorker)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Worker.Create)
					r.Put("/{workerID}", h.Worker.Update)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.List)
				r.Get("/{departmentID}", h.Department.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Department.Create)
				})
			})

			r.Route("/advances", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.Advance.Issue)
				r.Get("/{advanceID}", h.Advance.Get)
				r.Post("/{advanceID}/deductions", h.Advance.Deduct)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Request)
				r.Get("/", h.Leave.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{leaveID}/approve", h.Leave.Approve)
					r.Post("/{leaveID}/reject", h.Leave.Reject)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", h.Settings.Update)
				})
			})

			r.Route("/salary-reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.Salary.Generate)
				r.Post("/async", h.Salary.GenerateAsync)
				r.Get("/jobs/{jobID}", h.Salary.JobStatus)
			})
		})
	})
	return r
}
