package routes

import (
	"github.com/gorilla/mux"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/handlers"
	"masterboxer.com/project-social-blog/services"
)

// NewRouter registers every route behind the request logger.
func NewRouter(svc *services.Service, a *auth.Authenticator) *mux.Router {
	router := mux.NewRouter()
	router.Use(handlers.RequestLogger)

	router.HandleFunc("/health", handlers.Health()).Methods("GET")
	CreateAuthRoutes(svc, a, router)
	CreateUserRoutes(svc, a, router)
	CreatePostRoutes(svc, a, router)

	return router
}
