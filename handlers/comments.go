package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/services"
)

type commentBody struct {
	Content string `json:"content"`
}

func CreateComment(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commentBody
		if err := decode(r, &req); err != nil {
			badRequest(w, "Invalid request body")
			return
		}

		comment, err := svc.CreateComment(r.Context(), auth.PrincipalFrom(r.Context()), mux.Vars(r)["id"], req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, comment)
	}
}

func GetPostComments(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.ListComments(r.Context(), auth.PrincipalFrom(r.Context()), mux.Vars(r)["id"], pageParam(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func GetComment(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		comment, err := svc.GetComment(r.Context(), auth.PrincipalFrom(r.Context()), vars["id"], vars["commentId"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, comment)
	}
}

func UpdateComment(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commentBody
		if err := decode(r, &req); err != nil {
			badRequest(w, "Invalid request body")
			return
		}

		vars := mux.Vars(r)
		err := svc.UpdateComment(r.Context(), auth.PrincipalFrom(r.Context()), vars["id"], vars["commentId"], req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func DeleteComment(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		if err := svc.DeleteComment(r.Context(), auth.PrincipalFrom(r.Context()), vars["id"], vars["commentId"]); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
