package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/services"
)

func Register(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.RegisterInput
		if err := decode(r, &in); err != nil {
			badRequest(w, "Invalid request body")
			return
		}

		u, err := svc.CreateUser(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

func Login(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decode(r, &req); err != nil {
			badRequest(w, "Invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			badRequest(w, "email and password are required")
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, token)
	}
}

func Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, auth.PrincipalFrom(r.Context()))
	}
}

func GetUserById(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.GetUser(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func UpdateUser(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.UpdateUserInput
		if err := decode(r, &in); err != nil {
			badRequest(w, "Invalid request body")
			return
		}

		res, err := svc.UpdateUser(r.Context(), auth.PrincipalFrom(r.Context()), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func DeleteUser(svc *services.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteUser(r.Context(), auth.PrincipalFrom(r.Context())); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
