package api

import (
	"net/http"

	"github.com/arjunv/vidtube/internal/api/handlers"
	"github.com/arjunv/vidtube/internal/api/middleware"
	"github.com/arjunv/vidtube/internal/config"
	"github.com/arjunv/vidtube/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	userHandler := handlers.NewUserHandler(services.User)
	mediaHandler := handlers.NewMediaHandler(services.Media)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public routes
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh-token", authHandler.Refresh)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/logout", authHandler.Logout)
				r.Post("/password", authHandler.ChangePassword)
				r.Get("/me", userHandler.Me)
				r.Patch("/me", userHandler.UpdateAccount)
				r.Patch("/avatar", userHandler.AttachAvatar)
				r.Patch("/cover", userHandler.AttachCover)
			})
		})

		// Media routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Post("/media/uploads", mediaHandler.RequestUpload)
			r.Get("/media/uploads", mediaHandler.ListUploads)
			r.Get("/media/url", mediaHandler.DownloadURL)
		})
	})

	return r
}
