package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/edublog/edublog/api"
	"github.com/edublog/edublog/blog/application"
	"github.com/edublog/edublog/blog/domain"
	"github.com/edublog/edublog/shared/broadcast"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type memRemote struct {
	mu    sync.Mutex
	posts []domain.Post
}

func (m *memRemote) Load(context.Context) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Post(nil), m.posts...), nil
}

func (m *memRemote) Save(_ context.Context, posts []domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append([]domain.Post(nil), posts...)
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cache := &memCache{data: make(map[string]string)}
	remote := &memRemote{posts: []domain.Post{
		{
			ID:          1,
			Title:       "Seeded",
			ContentType: domain.ContentTypeBlog,
			Excerpt:     "e",
			Content:     "c",
			IsPublished: true,
			PublishedAt: "2024-06-01",
			CreatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}}

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	auth := application.NewAuthService(
		cache,
		&application.SingleUserVerifier{Username: "admin", PasswordHash: hash},
		[]byte("test-secret"),
		time.Hour,
	)

	repo := application.NewPostRepository(cache, remote, broadcast.New(), auth)
	t.Cleanup(func() { repo.Close() })
	if err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	router := gin.New()
	NewAPI(router, repo, auth, application.NewContactService(cache), application.NewMarkdownRenderer())
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListPostsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/posts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var page domain.Page
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}
	if page.Pagination.Total != 1 || len(page.Posts) != 1 {
		t.Errorf("page = %+v, want the seeded post", page)
	}
	if page.Posts[0].Title != "Seeded" {
		t.Errorf("post title = %q", page.Posts[0].Title)
	}
}

func TestListPostsRejectsBadQuery(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/posts?page=zero",
		"/api/v1/posts?page=0",
		"/api/v1/posts?limit=-1",
		"/api/v1/posts?published=maybe",
	} {
		if w := doJSON(t, router, http.MethodGet, path, nil); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, w.Code)
		}
	}
}

func TestGetPostEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/posts/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if w := doJSON(t, router, http.MethodGet, "/api/v1/posts/99", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d, want 404", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/api/v1/posts/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id status = %d, want 400", w.Code)
	}
}

func TestWriteEndpointsRequireSession(t *testing.T) {
	router := newTestRouter(t)

	draft := domain.Draft{Title: "t", ContentType: domain.ContentTypeBlog, Excerpt: "e", Content: "c"}

	if w := doJSON(t, router, http.MethodPost, "/api/v1/posts", draft); w.Code != http.StatusUnauthorized {
		t.Errorf("POST without session = %d, want 401", w.Code)
	}
	if w := doJSON(t, router, http.MethodPut, "/api/v1/posts/1", draft); w.Code != http.StatusUnauthorized {
		t.Errorf("PUT without session = %d, want 401", w.Code)
	}
	if w := doJSON(t, router, http.MethodDelete, "/api/v1/posts/1", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("DELETE without session = %d, want 401", w.Code)
	}
}

func TestLoginAndCreateFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username: "admin",
		Password: "pw",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}

	var session api.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if !session.Authenticated || session.Username != "admin" {
		t.Errorf("session = %+v", session)
	}

	draft := domain.Draft{Title: "New", ContentType: domain.ContentTypeBlog, Excerpt: "e", Content: "c", IsPublished: true}
	w = doJSON(t, router, http.MethodPost, "/api/v1/posts", draft)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	var created domain.Post
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode post: %v", err)
	}
	if created.ID != 2 || created.Title != "New" {
		t.Errorf("created = %+v", created)
	}

	if w := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil); w.Code != http.StatusNoContent {
		t.Errorf("logout status = %d, want 204", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/api/v1/posts", draft); w.Code != http.StatusUnauthorized {
		t.Errorf("create after logout = %d, want 401", w.Code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("login status = %d, want 401", w.Code)
	}
}

func TestSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/auth/session", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session status = %d, want 200", w.Code)
	}

	var session api.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if session.Authenticated {
		t.Error("anonymous session reported as authenticated")
	}
}

func TestRenderEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/render", api.RenderRequest{
		Markdown: "**bold** and *italic*",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d, want 200", w.Code)
	}

	var resp api.RenderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.HTML != "<p><strong>bold</strong> and <em>italic</em></p>" {
		t.Errorf("rendered html = %q", resp.HTML)
	}
}

func TestContactFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/csrf", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("csrf status = %d, want 200", w.Code)
	}
	var csrf api.CSRFResponse
	if err := json.Unmarshal(w.Body.Bytes(), &csrf); err != nil {
		t.Fatalf("failed to decode csrf response: %v", err)
	}

	msg := api.ContactRequest{
		StudentName:  "Ada",
		StudentEmail: "ada@example.com",
		Subject:      "hi",
		Message:      "hello",
		CSRFToken:    csrf.Token,
	}
	if w := doJSON(t, router, http.MethodPost, "/api/v1/contact", msg); w.Code != http.StatusCreated {
		t.Errorf("contact status = %d, want 201: %s", w.Code, w.Body.String())
	}

	msg.CSRFToken = "stale"
	if w := doJSON(t, router, http.MethodPost, "/api/v1/contact", msg); w.Code != http.StatusBadRequest {
		t.Errorf("contact with stale token = %d, want 400", w.Code)
	}
}

func TestSyncEndpoint(t *testing.T) {
	router := newTestRouter(t)

	if w := doJSON(t, router, http.MethodPost, "/api/v1/sync", nil); w.Code != http.StatusNoContent {
		t.Errorf("sync status = %d, want 204", w.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", w.Code)
	}

	var stats domain.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.Total != 1 || stats.Published != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
