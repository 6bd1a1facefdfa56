package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/services"
)

func CreatePost(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.PostInput
		if err := decode(r, &in); err != nil {
			badRequest(w, "Invalid request body")
			return
		}

		post, err := svc.CreatePost(r.Context(), auth.PrincipalFrom(r.Context()), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

// GetPosts lists ?author= posts, the caller's own when no author is given.
func GetPosts(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		author := r.URL.Query().Get("author")
		page, err := svc.ListPosts(r.Context(), auth.PrincipalFrom(r.Context()), author, pageParam(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func GetUserFeed(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.Feed(r.Context(), auth.PrincipalFrom(r.Context()), pageParam(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func SearchPosts(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, err := svc.SearchPosts(r.Context(), auth.PrincipalFrom(r.Context()), services.SearchQuery{
			Query:  q.Get("q"),
			Author: q.Get("author"),
			Sort:   q.Get("sort"),
			Page:   pageParam(r),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func GetPost(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := svc.GetPost(r.Context(), auth.PrincipalFrom(r.Context()), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func UpdatePost(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
		}
		if err := decode(r, &req); err != nil {
			badRequest(w, "Invalid request body")
			return
		}

		post, err := svc.UpdatePost(r.Context(), auth.PrincipalFrom(r.Context()), mux.Vars(r)["id"], req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func DeletePost(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePost(r.Context(), auth.PrincipalFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ToggleLike flips the caller's like on a post, or on a comment when the
// route carries a commentId.
func ToggleLike(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		kind, id := models.KindPost, vars["id"]
		if commentID, ok := vars["commentId"]; ok {
			kind, id = models.KindComment, commentID
		}

		res, err := svc.ToggleLike(r.Context(), auth.PrincipalFrom(r.Context()), kind, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
