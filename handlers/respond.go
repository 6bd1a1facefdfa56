package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"masterboxer.com/project-social-blog/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindInvalidArgument:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service failure onto its status code. Internal
// failures never expose their text.
func writeError(w http.ResponseWriter, err error) {
	kind := services.KindOf(err)
	msg := err.Error()
	if kind == services.KindInternal {
		msg = services.InternalMessage
	}
	writeJSON(w, statusFor(kind), map[string]string{"error": msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// pageParam reads the 1-indexed ?page= query value and returns it
// 0-indexed. Missing or unparsable values mean the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 0
	}
	return page - 1
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
