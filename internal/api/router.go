package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"netsecurepro/internal/api/handler"
	"netsecurepro/internal/api/middleware"
	"netsecurepro/internal/api/view"
	"netsecurepro/internal/app/service"
	"netsecurepro/internal/domain/repository"
	"netsecurepro/web"
)

func NewRouter(
	authService *service.AuthService,
	dashboardService *service.DashboardService,
	userRepo repository.UserRepository,
	renderer *view.Renderer,
) http.Handler {
	r := chi.NewRouter()

	pageHandler := handler.NewPageHandler(renderer)
	authHandler := handler.NewAuthHandler(authService, renderer)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, renderer)
	statusHandler := handler.NewStatusHandler()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(middleware.Recoverer(pageHandler.ServerError))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Session middleware: verify the cookie, then resolve it to a user.
	// Handlers see an explicit (possibly absent) current user in the request
	// context, never ambient global state.
	r.Use(middleware.SessionVerifier())
	r.Use(middleware.SessionUser(userRepo))

	r.NotFound(pageHandler.NotFound)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	pageHandler.RegisterRoutes(r)
	authHandler.RegisterRoutes(r)
	r.Route("/dashboard", dashboardHandler.RegisterRoutes)
	r.Route("/api", statusHandler.RegisterRoutes)

	r.Handle("/static/*", http.FileServer(http.FS(web.FS)))

	return r
}
