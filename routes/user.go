package routes

import (
	"github.com/gorilla/mux"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/handlers"
	"masterboxer.com/project-social-blog/services"
)

func CreateAuthRoutes(svc *services.Service, a *auth.Authenticator, router *mux.Router) *mux.Router {
	router.HandleFunc("/auth/register", handlers.Register(svc)).Methods("POST")
	router.HandleFunc("/auth/login", handlers.Login(svc)).Methods("POST")
	router.HandleFunc("/auth/profile", a.Guard(true, handlers.Profile())).Methods("GET")

	return router
}

func CreateUserRoutes(svc *services.Service, a *auth.Authenticator, router *mux.Router) *mux.Router {
	router.HandleFunc("/users/followers", a.Guard(true, handlers.ListFollowers(svc))).Methods("GET")
	router.HandleFunc("/users", a.Guard(true, handlers.UpdateUser(svc))).Methods("PUT")
	router.HandleFunc("/users", a.Guard(true, handlers.DeleteUser(svc))).Methods("DELETE")
	router.HandleFunc("/users/{id}", handlers.GetUserById(svc)).Methods("GET")

	router.HandleFunc("/users/{id}/follow", a.Guard(true, handlers.SetFollow(svc, true))).Methods("POST")
	router.HandleFunc("/users/{id}/unfollow", a.Guard(true, handlers.SetFollow(svc, false))).Methods("DELETE")

	return router
}
