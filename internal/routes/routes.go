package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"TASKTRACKER_BACK-END/internal/handlers"
	"TASKTRACKER_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	authHandler *handlers.AuthHandler,
	tasksHandler *handlers.TasksHandler,
	healthHandler *handlers.HealthHandler,
	authn *middleware.Authenticator,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("GET /healthz", healthHandler.HealthCheck)
	mux.HandleFunc("GET /livez", healthHandler.LivenessCheck)
	mux.HandleFunc("GET /readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/profile", authn.Wrap(authHandler.Profile))

	// Task routes, all behind the auth gate
	mux.HandleFunc("POST /api/tasks", authn.Wrap(tasksHandler.Create))
	mux.HandleFunc("GET /api/tasks", authn.Wrap(tasksHandler.List))
	mux.HandleFunc("GET /api/tasks/{id}", authn.Wrap(tasksHandler.Get))
	mux.HandleFunc("PUT /api/tasks/{id}", authn.Wrap(tasksHandler.Update))
	mux.HandleFunc("PATCH /api/tasks/{id}", authn.Wrap(tasksHandler.Update))
	mux.HandleFunc("DELETE /api/tasks/{id}", authn.Wrap(tasksHandler.Delete))

	// API documentation
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("/", rootHandler)

	return mux
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Task tracker backend is running."))
}
