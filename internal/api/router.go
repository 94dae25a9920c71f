package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hirwaf/task-management-be/internal/api/handlers"
	apimw "github.com/hirwaf/task-management-be/internal/api/middleware"
	"github.com/hirwaf/task-management-be/internal/infrastructure/auth"
)

func NewRouter(
	taskHandler *handlers.TaskHandler,
	userHandler *handlers.UserHandler,
	jwtManager *auth.JWTManager,
	limiter *apimw.RateLimiter,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(limiter.Handler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})

		// всё остальное только с токеном
		r.Group(func(r chi.Router) {
			r.Use(apimw.Auth(jwtManager))

			r.Get("/users", userHandler.ListUsers)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Get("/stats", taskHandler.GetStats)
				r.Get("/excel-export", taskHandler.ExportTasks)
				r.Get("/projects/list", taskHandler.ListProjects)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTask)
					r.Patch("/", taskHandler.UpdateTask)
					r.Delete("/", taskHandler.DeleteTask)
					r.Post("/attachments/{attachmentId}", taskHandler.AssociateAttachment)
				})
			})
		})
	})

	return r
}
