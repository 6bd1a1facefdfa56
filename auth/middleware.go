// Package auth issues and verifies access tokens and resolves the caller
// of each request.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"masterboxer.com/project-social-blog/models"
)

type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (*models.Principal, error)
}

type TokenParser interface {
	Parse(token string) (string, error)
}

type Authenticator struct {
	tokens TokenParser
	users  PrincipalResolver
}

func NewAuthenticator(tokens TokenParser, users PrincipalResolver) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller attached by Guard, or nil.
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey{}).(*models.Principal)
	return p
}

// Guard resolves the caller from the Authorization header. With required
// set, requests without a valid live user are rejected with 401; otherwise
// they continue anonymously.
func (a *Authenticator) Guard(required bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := a.resolve(r)
		if !ok && required {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		if ok {
			r = r.WithContext(WithPrincipal(r.Context(), p))
		}
		next(w, r)
	}
}

func (a *Authenticator) resolve(r *http.Request) (*models.Principal, bool) {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, false
	}
	userID, err := a.tokens.Parse(token)
	if err != nil {
		return nil, false
	}
	p, err := a.users.ResolvePrincipal(r.Context(), userID)
	if err != nil {
		return nil, false
	}
	return p, true
}
