package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"masterboxer.com/project-social-blog/auth"
	"masterboxer.com/project-social-blog/repository/memory"
	"masterboxer.com/project-social-blog/services"
)

type apiClient struct {
	t      *testing.T
	router *mux.Router
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := services.New(memory.New(), auth.BcryptHasher{Cost: bcrypt.MinCost}, tokens)
	return &apiClient{t: t, router: NewRouter(svc, auth.NewAuthenticator(tokens, svc))}
}

func (c *apiClient) do(method, path, token string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			c.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func (c *apiClient) signup(name string) (id, token string) {
	c.t.Helper()
	var user struct {
		ID string `json:"id"`
	}
	creds := map[string]string{"username": name, "email": name + "@example.com", "password": "pw-" + name}
	if code := c.do("POST", "/auth/register", "", creds, &user); code != http.StatusCreated {
		c.t.Fatalf("register %s: status %d", name, code)
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if code := c.do("POST", "/auth/login", "", creds, &tok); code != http.StatusOK {
		c.t.Fatalf("login %s: status %d", name, code)
	}
	return user.ID, tok.AccessToken
}

type postPage struct {
	Prev bool `json:"prev"`
	Next bool `json:"next"`
	Data []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"data"`
}

func TestAPIFlow(t *testing.T) {
	api := newAPI(t)
	aliceID, alice := api.signup("alice")
	bobID, bob := api.signup("bob")

	if code := api.do("GET", "/health", "", nil, nil); code != http.StatusOK {
		t.Fatalf("health: %d", code)
	}
	if code := api.do("GET", "/auth/profile", "", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous profile: %d", code)
	}
	var profile struct {
		ID string `json:"id"`
	}
	if code := api.do("GET", "/auth/profile", alice, nil, &profile); code != http.StatusOK || profile.ID != aliceID {
		t.Fatalf("profile: %d %+v", code, profile)
	}

	var post struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	code := api.do("POST", "/posts", alice, map[string]string{"title": "hello", "content": "world"}, &post)
	if code != http.StatusCreated || post.Title != "0-hello" {
		t.Fatalf("create post: %d %+v", code, post)
	}

	var feed postPage
	if code := api.do("GET", "/posts/feeds", bob, nil, &feed); code != http.StatusOK || len(feed.Data) != 1 {
		t.Fatalf("fallback feed: %d %+v", code, feed)
	}

	var search postPage
	if code := api.do("GET", "/posts/search?q=HELL&sort=oldest", "", nil, &search); code != http.StatusOK || len(search.Data) != 1 {
		t.Fatalf("anonymous search: %d %+v", code, search)
	}

	var like struct {
		Status string `json:"status"`
	}
	if code := api.do("PUT", "/posts/"+post.ID+"/like", bob, nil, &like); code != http.StatusOK || like.Status != "ADD" {
		t.Fatalf("like: %d %+v", code, like)
	}

	var follow struct {
		Following bool `json:"follow_status"`
	}
	if code := api.do("POST", "/users/"+aliceID+"/follow", bob, nil, &follow); code != http.StatusOK || !follow.Following {
		t.Fatalf("follow: %d %+v", code, follow)
	}
	var followers struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if code := api.do("GET", "/users/followers?page=1", bob, nil, &followers); code != http.StatusOK ||
		len(followers.Data) != 1 || followers.Data[0].ID != aliceID {
		t.Fatalf("followers: %d %+v", code, followers)
	}

	var comment struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	code = api.do("POST", "/posts/"+post.ID+"/comments", bob, map[string]string{"content": "nice"}, &comment)
	if code != http.StatusCreated || comment.PostID != post.ID {
		t.Fatalf("comment: %d %+v", code, comment)
	}
	if code := api.do("PUT", "/posts/"+post.ID+"/comments/"+comment.ID+"/like", alice, nil, &like); code != http.StatusOK || like.Status != "ADD" {
		t.Fatalf("comment like: %d %+v", code, like)
	}
	if code := api.do("DELETE", "/posts/"+post.ID+"/comments/"+comment.ID, bob, nil, nil); code != http.StatusOK {
		t.Fatalf("delete comment: %d", code)
	}

	if code := api.do("DELETE", "/users/"+aliceID+"/unfollow", bob, nil, &follow); code != http.StatusOK || follow.Following {
		t.Fatalf("unfollow: %d %+v", code, follow)
	}
	if code := api.do("GET", "/users/"+bobID, "", nil, nil); code != http.StatusOK {
		t.Fatalf("public profile: %d", code)
	}
}

func TestAPIErrors(t *testing.T) {
	api := newAPI(t)
	_, alice := api.signup("alice")
	bobID, bob := api.signup("bob")

	var body map[string]string
	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"malformed post id", "GET", "/posts/not-an-id", alice, nil, http.StatusBadRequest},
		{"self follow", "POST", "/users/" + bobID + "/follow", bob, nil, http.StatusBadRequest},
		{"duplicate email", "POST", "/auth/register", "", map[string]string{"username": "x", "email": "alice@example.com", "password": "x"}, http.StatusConflict},
		{"wrong password", "POST", "/auth/login", "", map[string]string{"email": "alice@example.com", "password": "nope"}, http.StatusUnauthorized},
		{"feed needs auth", "GET", "/posts/feeds", "", nil, http.StatusUnauthorized},
		{"empty update", "PUT", "/users", alice, map[string]string{}, http.StatusBadRequest},
		{"missing post", "PUT", "/posts/01ARZ3NDEKTSV4RRFFQ69G5FAV/like", alice, nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body = nil
			if code := api.do(tt.method, tt.path, tt.token, tt.body, &body); code != tt.want {
				t.Fatalf("status = %d, want %d (%v)", code, tt.want, body)
			}
			if body["error"] == "" {
				t.Fatal("error responses carry a message")
			}
		})
	}
}

func TestAPIExtremePageNumbers(t *testing.T) {
	api := newAPI(t)
	_, alice := api.signup("alice")
	if code := api.do("POST", "/posts", alice, map[string]string{"title": "hello", "content": "world"}, nil); code != http.StatusCreated {
		t.Fatalf("create post: %d", code)
	}

	tests := []struct {
		page      string
		wantPosts int
	}{
		{"-9223372036854775808", 1},
		{"0", 1},
		{"9223372036854775807", 0},
		{"1844674407370955161", 0},
	}
	for _, path := range []string{"/posts", "/posts/feeds", "/posts/search?q=hello&"} {
		for _, tt := range tests {
			sep := "?"
			if path[len(path)-1] == '&' {
				sep = ""
			}
			target := path + sep + "page=" + tt.page
			var page postPage
			if code := api.do("GET", target, alice, nil, &page); code != http.StatusOK {
				t.Fatalf("%s: status %d", target, code)
			}
			if len(page.Data) != tt.wantPosts {
				t.Fatalf("%s: got %d posts, want %d", target, len(page.Data), tt.wantPosts)
			}
		}
	}
}
