package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-bookmarks-api/config"
	"github.com/oksasatya/go-bookmarks-api/internal/container"
	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type api struct {
	t      *testing.T
	engine *gin.Engine
	c      *container.Container
}

func newAPI(t *testing.T) *api {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PASSWORD_HASH_ALGO", "bcrypt")
	cfg, err := config.Load()
	require.NoError(t, err)

	c, err := container.New(context.Background(), cfg, helpers.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	// keep hashing cheap in tests
	c.Auth.Hasher = &helpers.BcryptHasher{Cost: 4}

	return &api{t: t, engine: New(c), c: c}
}

func (a *api) call(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, BasePath+path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

type tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (a *api) signup(email, password string) tokens {
	a.t.Helper()
	w := a.call(http.MethodPost, "/auth/signup", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var tk tokens
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &tk))
	return tk
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestSignupThenSignin(t *testing.T) {
	a := newAPI(t)
	tk := a.signup("vlad@gmail.com", "123456789")
	assert.NotEmpty(t, tk.AccessToken)
	assert.NotEmpty(t, tk.RefreshToken)

	w := a.call(http.MethodPost, "/auth/signin", "", map[string]string{"email": "vlad@gmail.com", "password": "123456789"})
	require.Equal(t, http.StatusOK, w.Code)
	tk = decode[tokens](t, w)

	w = a.call(http.MethodGet, "/users/me", tk.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, w)
	assert.Equal(t, "vlad@gmail.com", me["email"])
}

func TestSignupDuplicateKeepsOriginalPassword(t *testing.T) {
	a := newAPI(t)
	a.signup("vlad@gmail.com", "123456789")

	w := a.call(http.MethodPost, "/auth/signup", "", map[string]string{"email": "vlad@gmail.com", "password": "different-pass"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Credentials taken", decode[map[string]any](t, w)["message"])

	w = a.call(http.MethodPost, "/auth/signin", "", map[string]string{"email": "vlad@gmail.com", "password": "123456789"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.call(http.MethodPost, "/auth/signin", "", map[string]string{"email": "vlad@gmail.com", "password": "different-pass"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSigninFailuresAreIndistinguishable(t *testing.T) {
	a := newAPI(t)
	a.signup("vlad@gmail.com", "123456789")

	wrongPass := a.call(http.MethodPost, "/auth/signin", "", map[string]string{"email": "vlad@gmail.com", "password": "nope-nope"})
	noUser := a.call(http.MethodPost, "/auth/signin", "", map[string]string{"email": "ghost@gmail.com", "password": "123456789"})

	assert.Equal(t, http.StatusForbidden, wrongPass.Code)
	assert.Equal(t, wrongPass.Code, noUser.Code)
	assert.Equal(t, decode[map[string]any](t, wrongPass)["message"], decode[map[string]any](t, noUser)["message"])
}

func TestAuthValidation(t *testing.T) {
	a := newAPI(t)
	tests := []struct {
		name string
		path string
		body any
	}{
		{"signup empty email", "/auth/signup", map[string]string{"password": "123456789"}},
		{"signup bad email", "/auth/signup", map[string]string{"email": "nope", "password": "123456789"}},
		{"signup short password", "/auth/signup", map[string]string{"email": "a@b.c", "password": "123"}},
		{"signup password over 72 bytes", "/auth/signup", map[string]string{"email": "a@b.c", "password": strings.Repeat("é", 40)}},
		{"signup no body", "/auth/signup", nil},
		{"signin empty password", "/auth/signin", map[string]string{"email": "a@b.c"}},
		{"signin wrong type", "/auth/signin", map[string]any{"email": 1, "password": "123456789"}},
		{"refresh missing token", "/auth/refresh", map[string]string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := a.call(http.MethodPost, tc.path, "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decode[map[string]any](t, w)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	a := newAPI(t)
	tk := a.signup("vlad@gmail.com", "123456789")

	expiredJWT := helpers.NewJWTManager(a.c.Config.JWTAccessSecret, a.c.Config.JWTRefreshSecret, -time.Minute, time.Hour)
	expired, _, err := expiredJWT.GenerateAccessToken("someone", "x@y.z")
	require.NoError(t, err)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users"},
		{http.MethodPost, "/bookmarks"},
		{http.MethodGet, "/bookmarks"},
		{http.MethodGet, "/bookmarks/7c9e6679-7425-40de-944b-e07fc1f90ae7"},
		{http.MethodPatch, "/bookmarks/7c9e6679-7425-40de-944b-e07fc1f90ae7"},
		{http.MethodDelete, "/bookmarks/7c9e6679-7425-40de-944b-e07fc1f90ae7"},
	}
	for _, rt := range routes {
		for name, token := range map[string]string{
			"none":    "",
			"garbage": "garbage",
			"expired": expired,
			"refresh": tk.RefreshToken,
		} {
			w := a.call(rt.method, rt.path, token, map[string]string{})
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s with %s token", rt.method, rt.path, name)
		}
	}

	// nothing was created by the rejected POST
	w := a.call(http.MethodGet, "/bookmarks", tk.AccessToken, nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestOwnershipIsolation(t *testing.T) {
	a := newAPI(t)
	alice := a.signup("alice@gmail.com", "123456789")
	bob := a.signup("bob@gmail.com", "123456789")

	w := a.call(http.MethodPost, "/bookmarks", alice.AccessToken, map[string]string{"title": "Alice's", "link": "https://example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]any](t, w)["id"].(string)

	w = a.call(http.MethodGet, "/bookmarks/"+id, bob.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = a.call(http.MethodPatch, "/bookmarks/"+id, bob.AccessToken, map[string]string{"title": "Bob's now"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access to resources denied", decode[map[string]any](t, w)["message"])

	w = a.call(http.MethodDelete, "/bookmarks/"+id, bob.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.call(http.MethodGet, "/bookmarks", bob.AccessToken, nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = a.call(http.MethodGet, "/bookmarks/"+id, alice.AccessToken, nil)
	assert.Equal(t, "Alice's", decode[map[string]any](t, w)["title"])
}

func TestBookmarkRoundTrip(t *testing.T) {
	a := newAPI(t)
	tk := a.signup("vlad@gmail.com", "123456789")

	w := a.call(http.MethodPost, "/bookmarks", tk.AccessToken, map[string]string{"title": "First bookmark", "link": "https://example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]any](t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = a.call(http.MethodGet, "/bookmarks/"+id, tk.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "First bookmark", got["title"])
	assert.Equal(t, "https://example.com", got["link"])

	w = a.call(http.MethodGet, "/bookmarks", tk.AccessToken, nil)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = a.call(http.MethodDelete, "/bookmarks/"+id, tk.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.call(http.MethodGet, "/bookmarks", tk.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestEditIsPartial(t *testing.T) {
	a := newAPI(t)
	tk := a.signup("vlad@gmail.com", "123456789")

	w := a.call(http.MethodPost, "/bookmarks", tk.AccessToken, map[string]string{"title": "Kubernetes Course - Full Beginners Tutorial", "link": "https://www.youtube.com/watch?v=d6WC5n9G_sM"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]any](t, w)["id"].(string)

	w = a.call(http.MethodPatch, "/bookmarks/"+id, tk.AccessToken, map[string]string{"description": "Learn how to use Kubernetes"})
	require.Equal(t, http.StatusOK, w.Code)
	edited := decode[map[string]any](t, w)
	assert.Equal(t, "Kubernetes Course - Full Beginners Tutorial", edited["title"])
	assert.Equal(t, "https://www.youtube.com/watch?v=d6WC5n9G_sM", edited["link"])
	assert.Equal(t, "Learn how to use Kubernetes", edited["description"])
}

func TestUserResponsesNeverCarryHash(t *testing.T) {
	a := newAPI(t)
	tk := a.signup("vlad@gmail.com", "123456789")

	for _, w := range []*httptest.ResponseRecorder{
		a.call(http.MethodGet, "/users/me", tk.AccessToken, nil),
		a.call(http.MethodPatch, "/users", tk.AccessToken, map[string]string{"firstName": "Vladimir", "email": "vlad2@gmail.com"}),
		a.call(http.MethodPost, "/bookmarks", tk.AccessToken, map[string]string{"title": "t", "link": "https://example.com"}),
	} {
		require.Less(t, w.Code, 300, w.Body.String())
		body := strings.ToLower(w.Body.String())
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "hash")
		assert.NotContains(t, body, "$2a$")
	}

	w := a.call(http.MethodGet, "/users/me", tk.AccessToken, nil)
	me := decode[map[string]any](t, w)
	assert.Equal(t, "Vladimir", me["firstName"])
	assert.Equal(t, "vlad2@gmail.com", me["email"])
}

func TestEditUserEmailConflict(t *testing.T) {
	a := newAPI(t)
	tk := a.signup("vlad@gmail.com", "123456789")
	a.signup("taken@gmail.com", "123456789")

	w := a.call(http.MethodPatch, "/users", tk.AccessToken, map[string]string{"email": "taken@gmail.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRefreshFlow(t *testing.T) {
	a := newAPI(t)
	tk := a.signup("vlad@gmail.com", "123456789")

	w := a.call(http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": tk.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	next := decode[tokens](t, w)

	w = a.call(http.MethodGet, "/bookmarks", next.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.call(http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": tk.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndDebug(t *testing.T) {
	a := newAPI(t)

	w := a.call(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = a.call(http.MethodGet, "/debug/vars", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
