package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/services"
)

// SetFollow serves both /follow and /unfollow; follow picks the direction.
func SetFollow(svc *services.Service, follow bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.SetFollow(r.Context(), auth.PrincipalFrom(r.Context()), mux.Vars(r)["id"], follow)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func ListFollowers(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.ListFollowers(r.Context(), auth.PrincipalFrom(r.Context()), pageParam(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}
