package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"griddle/app/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorilla/mux"
)

type apiClient struct {
	t      *testing.T
	router *mux.Router
	token  string
}

func setupAPI(t *testing.T) (*apiClient, *storage.MemoryStore) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	media := storage.NewMemoryStore()
	router := Setup(Options{
		DB:          db,
		Media:       media,
		AllowedTags: []string{"tech", "life", "travel"},
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
	})
	return &apiClient{t: t, router: router}, media
}

func (c *apiClient) do(method, path, payload string) (*httptest.ResponseRecorder, map[string]interface{}) {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			decoded = nil
		}
	}
	return w, decoded
}

func (c *apiClient) signUp(name, email, password string) {
	c.t.Helper()

	payload := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	w, _ := c.do(http.MethodPost, "/api/auth/register", payload)
	require.Equal(c.t, http.StatusCreated, w.Code)

	w, body := c.do(http.MethodPost, "/api/auth/login", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(c.t, http.StatusOK, w.Code)
	token, ok := body["token"].(string)
	require.True(c.t, ok)
	c.token = token
}

func TestBlogLifecycle(t *testing.T) {
	client, _ := setupAPI(t)
	client.signUp("alice", "alice@example.com", "secret123")

	// Create
	w, body := client.do(http.MethodPost, "/api/blogs",
		`{"title":"First Post","content":"A full lifecycle walkthrough","tags":["tech"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	blogID := int(body["data"].(map[string]interface{})["id"].(float64))
	require.Equal(t, 1, blogID)

	// List
	w, body = client.do(http.MethodGet, "/api/blogs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["results"])
	listed := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "alice", listed["author"].(map[string]interface{})["name"])

	// Show counts the view once for the authenticated viewer
	w, body = client.do(http.MethodGet, "/api/blogs/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["views"])

	w, body = client.do(http.MethodGet, "/api/blogs/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["views"])

	// Update
	w, body = client.do(http.MethodPatch, "/api/blogs/1", `{"title":"Renamed Post"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed Post", body["data"].(map[string]interface{})["title"])

	// React
	w, body = client.do(http.MethodPost, "/api/blogs/1/react", `{"reaction":"like"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["isLiked"])

	// Comment
	w, _ = client.do(http.MethodPost, "/api/blogs/1/comments", `{"content":"Nice post"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = client.do(http.MethodGet, "/api/blogs/1/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["results"])

	// Author posts
	w, body = client.do(http.MethodGet, "/api/blogs/1/author-posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["results"])

	// Delete cascades to comments
	w, _ = client.do(http.MethodDelete, "/api/blogs/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = client.do(http.MethodGet, "/api/blogs/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = client.do(http.MethodGet, "/api/blogs/1/comments", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorizationBoundaries(t *testing.T) {
	client, _ := setupAPI(t)

	t.Run("writes require a token", func(t *testing.T) {
		w, _ := client.do(http.MethodPost, "/api/blogs",
			`{"title":"Sneaky Post","content":"Should not be created"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	client.signUp("alice", "alice@example.com", "secret123")
	w, _ := client.do(http.MethodPost, "/api/blogs",
		`{"title":"Owned Post","content":"Belongs to alice alone","tags":["life"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("another user cannot update or delete", func(t *testing.T) {
		client.signUp("bob", "bob@example.com", "secret456")

		w, _ := client.do(http.MethodPatch, "/api/blogs/1", `{"title":"Hijacked"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = client.do(http.MethodDelete, "/api/blogs/1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous views still count by address", func(t *testing.T) {
		client.token = ""

		w, body := client.do(http.MethodGet, "/api/blogs/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), body["views"])
	})
}
