package wire

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"book-catalog/internal/data/entity"
	"book-catalog/internal/data/repository"
	"book-catalog/internal/dto/response"
	"book-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memStore backs both repositories so averages see reviews.
type memStore struct {
	mu       sync.Mutex
	books    []*entity.Book
	reviews  []*entity.Review
	reviewID int64
}

type memBookRepo struct{ s *memStore }

func (r memBookRepo) ListBooks(_ context.Context, query string) ([]*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]*entity.Book, 0)
	for _, b := range r.s.books {
		if q == "" || strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memBookRepo) FindByID(_ context.Context, id int64) (*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r memBookRepo) AverageRating(_ context.Context, bookID int64) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum, n int
	for _, rv := range r.s.reviews {
		if rv.BookID == bookID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return utils.RoundRating(float64(sum) / float64(n)), nil
}

func (r memBookRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.books)), nil
}

func (r memBookRepo) CreateMany(_ context.Context, books []*entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range books {
		b.ID = int64(len(r.s.books) + 1)
		b.CreatedAt = time.Now()
		r.s.books = append(r.s.books, b)
	}
	return nil
}

type memReviewRepo struct{ s *memStore }

func (r memReviewRepo) Upsert(_ context.Context, review *entity.Review) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reviews {
		if existing.BookID == review.BookID && existing.Username == review.Username {
			existing.Rating = review.Rating
			existing.Text = review.Text
			existing.UpdatedAt = time.Now()
			saved := *existing
			return &saved, nil
		}
	}

	r.s.reviewID++
	review.ID = r.s.reviewID
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	stored := *review
	r.s.reviews = append(r.s.reviews, &stored)
	return review, nil
}

func (r memReviewRepo) ListByBook(_ context.Context, bookID int64) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Review, 0)
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		if r.s.reviews[i].BookID == bookID {
			copied := *r.s.reviews[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testApp struct {
	t      *testing.T
	router http.Handler
	store  *memStore
}

func newTestApp(t *testing.T, db Pinger) *testApp {
	t.Helper()
	log := zap.NewNop()

	var credentials []entity.Credential
	for user, pass := range map[string]string{"mark": "mark123", "joe": "joe456"} {
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
		require.NoError(t, err)
		credentials = append(credentials, entity.Credential{Username: user, PasswordHash: string(hash)})
	}
	credRepo, err := repository.NewCredentialRepository(credentials, log)
	require.NoError(t, err)

	store := &memStore{}
	repo := &repository.Repository{
		Book:       memBookRepo{store},
		Review:     memReviewRepo{store},
		Credential: credRepo,
	}

	config := &utils.Config{
		App: utils.AppConfig{Name: "book-catalog", CORSOrigins: []string{"*"}, MetricsEnabled: true},
		JWT: utils.JWTConfig{Secret: "e2e-secret", Algorithm: "HS256", ExpiryMinutes: 60},
	}

	app := Wiring(repo, db, config, log)

	require.NoError(t, memBookRepo{store}.CreateMany(context.Background(), []*entity.Book{
		{Title: "Literature Today", Author: "Smith", Genre: "Lit"},
		{Title: "Go in Action", Author: "Kennedy", Genre: "Tech"},
		{Title: "Deep Space", Author: "Armstrong", Genre: "SciFi"},
	}))

	return &testApp{t: t, router: app.Router, store: store}
}

func (a *testApp) do(method, path, token, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(username, password string) string {
	form := url.Values{"username": {username}, "password": {password}}
	w := a.do(http.MethodPost, "/login", "", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var token response.TokenResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &token))
	assert.Equal(a.t, "bearer", token.TokenType)
	return token.AccessToken
}

// listedRating returns the average_rating GET /books reports for the single match of q.
func (a *testApp) listedRating(token, q string) float64 {
	a.t.Helper()
	w := a.do(http.MethodGet, "/books?q="+q, token, "", "")
	require.Equal(a.t, http.StatusOK, w.Code)
	books := decode[[]response.BookResponse](a.t, w)
	require.Len(a.t, books, 1)
	return books[0].AverageRating
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestEndToEnd_ReviewFlow(t *testing.T) {
	app := newTestApp(t, stubPinger{})

	joe := app.login("joe", "joe456")
	mark := app.login("mark", "mark123")

	// unauthenticated access is rejected
	w := app.do(http.MethodGet, "/books", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = app.do(http.MethodGet, "/books", "garbage", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// all books ordered by title, no ratings yet
	w = app.do(http.MethodGet, "/books", joe, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	books := decode[[]response.BookResponse](t, w)
	require.Len(t, books, 3)
	assert.Equal(t, []string{"Deep Space", "Go in Action", "Literature Today"},
		[]string{books[0].Title, books[1].Title, books[2].Title})
	for _, b := range books {
		assert.Equal(t, 0.0, b.AverageRating)
	}

	// case-insensitive search
	for _, q := range []string{"lit", "LIT", "Lit"} {
		w = app.do(http.MethodGet, "/books?q="+q, joe, "", "")
		found := decode[[]response.BookResponse](t, w)
		require.Len(t, found, 1, q)
		assert.Equal(t, "Literature Today", found[0].Title)
	}

	bookID := "2" // Go in Action

	w = app.do(http.MethodPost, "/books/"+bookID+"/reviews", joe, "application/json", `{"rating":5,"text":"great"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[response.ReviewResponse](t, w)
	assert.Equal(t, "joe", first.Username)
	assert.Equal(t, 5.0, app.listedRating(joe, "action"))

	// resubmission overwrites in place
	w = app.do(http.MethodPost, "/books/"+bookID+"/reviews", joe, "application/json", `{"rating":2,"text":"changed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[response.ReviewResponse](t, w)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Rating)
	assert.Equal(t, "changed", second.Text)
	assert.Equal(t, 2.0, app.listedRating(joe, "action"))

	w = app.do(http.MethodPost, "/books/"+bookID+"/reviews", mark, "application/json", `{"rating":4}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", decode[response.ReviewResponse](t, w).Text)

	w = app.do(http.MethodGet, "/books/"+bookID+"/reviews", joe, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decode[[]response.ReviewResponse](t, w)
	require.Len(t, reviews, 2)
	assert.Equal(t, "mark", reviews[0].Username)
	assert.Equal(t, "joe", reviews[1].Username)

	// (2 + 4) / 2
	w = app.do(http.MethodGet, "/books/"+bookID, joe, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.0, decode[response.BookResponse](t, w).AverageRating)

	// validation and missing books
	w = app.do(http.MethodPost, "/books/"+bookID+"/reviews", joe, "application/json", `{"rating":6}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/books/999/reviews", joe, "application/json", `{"rating":3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Book not found"}`, w.Body.String())

	w = app.do(http.MethodGet, "/books/999/reviews", joe, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Len(t, app.store.reviews, 2)
}

func TestEndToEnd_BadLogin(t *testing.T) {
	app := newTestApp(t, stubPinger{})

	form := url.Values{"username": {"mark"}, "password": {"joe456"}}
	w := app.do(http.MethodPost, "/login", "", "application/x-www-form-urlencoded", form.Encode())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Bad credentials"}`, w.Body.String())
}

func TestEndToEnd_OperationalEndpoints(t *testing.T) {
	app := newTestApp(t, stubPinger{})

	w := app.do(http.MethodGet, "/health", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = app.do(http.MethodGet, "/", "", "", "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/health", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/ready", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/metrics", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "book_catalog_http_requests_total")

	down := newTestApp(t, stubPinger{err: errors.New("connection refused")})
	w = down.do(http.MethodGet, "/ready", "", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsNamespace(t *testing.T) {
	assert.Equal(t, "book_catalog", metricsNamespace("book-catalog"))
	assert.Equal(t, "_9lives", metricsNamespace("9lives"))
	assert.Equal(t, "_2_books", metricsNamespace("2.books"))
	assert.Equal(t, "v2_api", metricsNamespace("v2-api"))
	assert.Equal(t, "app", metricsNamespace(""))
}
