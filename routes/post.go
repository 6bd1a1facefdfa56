package routes

import (
	"github.com/gorilla/mux"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/handlers"
	"masterboxer.com/project-social-blog/services"
)

func CreatePostRoutes(svc *services.Service, a *auth.Authenticator, router *mux.Router) *mux.Router {
	// Fixed paths go before /posts/{id} so they are not read as ids.
	router.HandleFunc("/posts/feeds", a.Guard(true, handlers.GetUserFeed(svc))).Methods("GET")
	router.HandleFunc("/posts/search", a.Guard(false, handlers.SearchPosts(svc))).Methods("GET")

	router.HandleFunc("/posts", a.Guard(true, handlers.CreatePost(svc))).Methods("POST")
	router.HandleFunc("/posts", a.Guard(true, handlers.GetPosts(svc))).Methods("GET")
	router.HandleFunc("/posts/{id}", a.Guard(true, handlers.GetPost(svc))).Methods("GET")
	router.HandleFunc("/posts/{id}", a.Guard(true, handlers.UpdatePost(svc))).Methods("PUT")
	router.HandleFunc("/posts/{id}", a.Guard(true, handlers.DeletePost(svc))).Methods("DELETE")
	router.HandleFunc("/posts/{id}/like", a.Guard(true, handlers.ToggleLike(svc))).Methods("PUT")

	router.HandleFunc("/posts/{id}/comments", a.Guard(true, handlers.CreateComment(svc))).Methods("POST")
	router.HandleFunc("/posts/{id}/comments", a.Guard(true, handlers.GetPostComments(svc))).Methods("GET")
	router.HandleFunc("/posts/{id}/comments/{commentId}", a.Guard(true, handlers.GetComment(svc))).Methods("GET")
	router.HandleFunc("/posts/{id}/comments/{commentId}", a.Guard(true, handlers.UpdateComment(svc))).Methods("PUT")
	router.HandleFunc("/posts/{id}/comments/{commentId}", a.Guard(true, handlers.DeleteComment(svc))).Methods("DELETE")
	router.HandleFunc("/posts/{id}/comments/{commentId}/like", a.Guard(true, handlers.ToggleLike(svc))).Methods("PUT")

	return router
}
