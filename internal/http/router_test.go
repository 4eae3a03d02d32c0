package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/bookstore-api/internal/auth"
	"github.com/redmonkez12/bookstore-api/internal/book"
	"github.com/redmonkez12/bookstore-api/internal/config"
	"github.com/redmonkez12/bookstore-api/internal/logging"
	"github.com/redmonkez12/bookstore-api/internal/user"
)

type stubUsers struct{}

func (stubUsers) Create(context.Context, string, string, string) (*user.User, error) {
	return nil, errors.New("registration is not exercised here")
}
func (stubUsers) GetByEmail(context.Context, string) (*user.User, error) { return nil, user.ErrNotFound }
func (stubUsers) GetByID(context.Context, uuid.UUID) (*user.User, error) { return nil, user.ErrNotFound }

type stubBooks struct{ books []book.Book }

func (s *stubBooks) List(context.Context) ([]book.Book, error) { return s.books, nil }
func (s *stubBooks) GetByID(_ context.Context, id int64) (*book.Book, error) {
	for _, b := range s.books {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, book.ErrNotFound
}
func (s *stubBooks) Search(context.Context, string) ([]book.Book, error) { return nil, nil }
func (s *stubBooks) TopRated(context.Context, int) ([]book.Book, error) { return s.books, nil }
func (s *stubBooks) Create(_ context.Context, in book.CreateInput) (*book.Book, error) {
	b := book.Book{ID: int64(len(s.books) + 1), Title: in.Title, Author: in.Author, Rating: in.Rating}
	s.books = append(s.books, b)
	return &b, nil
}
func (s *stubBooks) Delete(context.Context, int64) error { return nil }

type testEnv struct {
	router http.Handler
	tokens *auth.PasetoService
}

func newTestEnv(t *testing.T, env string) testEnv {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Env: env, TrustedOrigins: []string{"http://localhost:3000"}},
	}
	logger := logging.NewLogger(true)

	tokens, err := auth.NewPasetoService([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	authService := auth.NewService(stubUsers{}, tokens, logger, time.Hour)
	bookService := book.NewService(&stubBooks{books: []book.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Rating: 5}}}, nil, logger, 10)

	router := NewRouter(
		cfg,
		auth.NewHandler(authService, env != "dev"),
		book.NewHandler(bookService, env != "dev"),
		auth.NewMiddleware(tokens),
		logger,
	)

	return testEnv{router: router, tokens: tokens}
}

func (e testEnv) token(t *testing.T, role user.Role) string {
	t.Helper()
	tok, err := e.tokens.CreateToken(auth.TokenSubject{UserID: uuid.New(), Email: "a@x.com", Role: role}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e testEnv) serve(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t, "dev")

	rec := env.serve(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"api is running"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRouter_ProductionHeaders(t *testing.T) {
	env := newTestEnv(t, "prod")

	rec := env.serve(http.MethodGet, "/health", "", "")
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRouter_PublicBookRoutes(t *testing.T) {
	env := newTestEnv(t, "dev")

	assert.Equal(t, http.StatusOK, env.serve(http.MethodGet, "/api/books", "", "").Code)
	assert.Equal(t, http.StatusOK, env.serve(http.MethodGet, "/api/books/top", "", "").Code)
	assert.Equal(t, http.StatusOK, env.serve(http.MethodGet, "/api/books/search?q=dune", "", "").Code)
	assert.Equal(t, http.StatusOK, env.serve(http.MethodGet, "/api/books/1", "", "").Code)
	assert.Equal(t, http.StatusNotFound, env.serve(http.MethodGet, "/api/books/2", "", "").Code)
}

func TestRouter_MeRequiresAuth(t *testing.T) {
	env := newTestEnv(t, "dev")

	assert.Equal(t, http.StatusUnauthorized, env.serve(http.MethodGet, "/api/auth/me", "", "").Code)

	// Valid token for a user the store no longer knows
	rec := env.serve(http.MethodGet, "/api/auth/me", "", env.token(t, user.RoleUser))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	env := newTestEnv(t, "dev")
	body := `{"title":"Emma","author":"Jane Austen","rating":4}`

	assert.Equal(t, http.StatusUnauthorized, env.serve(http.MethodPost, "/api/admin/books", body, "").Code)
	assert.Equal(t, http.StatusForbidden, env.serve(http.MethodPost, "/api/admin/books", body, env.token(t, user.RoleUser)).Code)
	assert.Equal(t, http.StatusCreated, env.serve(http.MethodPost, "/api/admin/books", body, env.token(t, user.RoleAdmin)).Code)
	assert.Equal(t, http.StatusNoContent, env.serve(http.MethodDelete, "/api/admin/books/1", "", env.token(t, user.RoleAdmin)).Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	env := newTestEnv(t, "dev")

	rec := env.serve(http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ROUTE_NOT_FOUND")

	rec = env.serve(http.MethodPut, "/api/books", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_SwaggerOnlyInDevelopment(t *testing.T) {
	assert.Equal(t, http.StatusOK, newTestEnv(t, "dev").serve(http.MethodGet, "/swagger/index.html", "", "").Code)
	assert.Equal(t, http.StatusNotFound, newTestEnv(t, "prod").serve(http.MethodGet, "/swagger/index.html", "", "").Code)
}
