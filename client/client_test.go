package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yjkwon/cinefeed/credstore"
)

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := credstore.NewMemory()
	require.NoError(t, store.SetSession("abc123", "USER", ""))

	c := New(srv.URL, WithStore(store))
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/contents/genres"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestNoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/contents/genres"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "public requests go out unmodified")
}

func TestJSONBodyAndQuery(t *testing.T) {
	var gotPath, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   map[string]string{"email": "a@b.c"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/users", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"email":"a@b.c"}`, gotBody)
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/users"})
	require.Error(t, err)

	assert.True(t, IsStatus(err, http.StatusConflict))
	assert.Contains(t, err.Error(), "email already registered")
}

func TestLoginStoresCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(LoginResult{Token: "issued", Role: "ADMIN", Nickname: "jiho"})
	}))
	defer srv.Close()

	store := credstore.NewMemory()
	c := New(srv.URL, WithStore(store))

	result, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "issued", result.Token)

	tok, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "issued", tok)
	role, _ := store.Role()
	assert.Equal(t, "ADMIN", role)
	nick, _ := store.Nickname()
	assert.Equal(t, "jiho", nick)
}

func TestLogoutClearsCredential(t *testing.T) {
	store := credstore.NewMemory()
	require.NoError(t, store.SetSession("tok", "USER", "n"))

	c := New("http://unused", WithStore(store))
	require.NoError(t, c.Logout())

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestDeleteAccountClearsCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/user", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := credstore.NewMemory()
	require.NoError(t, store.SetSession("tok", "USER", "n"))

	c := New(srv.URL, WithStore(store))
	require.NoError(t, c.DeleteAccount(context.Background()))

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestUploadProfileImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "avatar.png", hdr.Filename)
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.local/avatar.png"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	url, err := c.UploadProfileImage(context.Background(), "avatar.png", strings.NewReader("pngbytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.local/avatar.png", url)
}

func TestSearchParamsValues(t *testing.T) {
	p := SearchParams{Query: "parasite", Type: "movie", Genre: "Thriller", Sort: "rating", Direction: "desc", Page: 2, Size: 20}
	q := p.values()
	assert.Equal(t, "parasite", q.Get("q"))
	assert.Equal(t, "MOVIE", q.Get("type"))
	assert.Equal(t, "thriller", q.Get("genre"))
	assert.Equal(t, "rating", q.Get("sort"))
	assert.Equal(t, "desc", q.Get("direction"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "20", q.Get("size"))

	// Zero values stay out of the query entirely.
	assert.Empty(t, SearchParams{}.values())
}
