package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/internal/model"
	"github.com/snnyvrz/shelfshare/internal/repository"
	"gorm.io/gorm"
)

type fakeAuthorRepo struct {
	ListFn     func(ctx context.Context, params repository.ListParams) ([]model.Author, error)
	CountFn    func(ctx context.Context, search string) (int64, error)
	ListAllFn  func(ctx context.Context) ([]model.Author, error)
	FindByIDFn func(ctx context.Context, id int64) (*model.Author, error)
	CreateFn   func(ctx context.Context, a *model.Author) error
	UpdateFn   func(ctx context.Context, id int64, fields map[string]any) (bool, error)
	DeleteFn   func(ctx context.Context, id int64) (bool, error)
}

func (f *fakeAuthorRepo) List(ctx context.Context, params repository.ListParams) ([]model.Author, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, params)
	}
	return []model.Author{}, nil
}

func (f *fakeAuthorRepo) Count(ctx context.Context, search string) (int64, error) {
	if f.CountFn != nil {
		return f.CountFn(ctx, search)
	}
	return 0, nil
}

func (f *fakeAuthorRepo) ListAll(ctx context.Context) ([]model.Author, error) {
	if f.ListAllFn != nil {
		return f.ListAllFn(ctx)
	}
	return []model.Author{}, nil
}

func (f *fakeAuthorRepo) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *model.Author) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, a)
	}
	return nil
}

func (f *fakeAuthorRepo) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, fields)
	}
	return false, nil
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return false, nil
}

type fakeBookRepo struct {
	ListFn         func(ctx context.Context, params repository.ListParams) ([]model.Book, error)
	CountFn        func(ctx context.Context, search string) (int64, error)
	ListByAuthorFn func(ctx context.Context, authorID int64) ([]model.Book, error)
	FindByIDFn     func(ctx context.Context, id int64) (*model.Book, error)
	CreateFn       func(ctx context.Context, b *model.Book) error
	UpdateFn       func(ctx context.Context, id int64, fields map[string]any) (bool, error)
	DeleteFn       func(ctx context.Context, id int64) (bool, error)
}

func (f *fakeBookRepo) List(ctx context.Context, params repository.ListParams) ([]model.Book, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, params)
	}
	return []model.Book{}, nil
}

func (f *fakeBookRepo) Count(ctx context.Context, search string) (int64, error) {
	if f.CountFn != nil {
		return f.CountFn(ctx, search)
	}
	return 0, nil
}

func (f *fakeBookRepo) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	if f.ListByAuthorFn != nil {
		return f.ListByAuthorFn(ctx, authorID)
	}
	return []model.Book{}, nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, fields)
	}
	return false, nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return false, nil
}

func setupRouter(db *gorm.DB) *gin.Engine {
	return setupRouterWithRepos(
		repository.NewGormAuthorRepository(db),
		repository.NewGormBookRepository(db),
	)
}

func setupRouterWithRepos(authors repository.AuthorRepository, books repository.BookRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("")
	NewAuthorHandler(authors, books).RegisterRoutes(api)
	NewBookHandler(books, authors).RegisterRoutes(api)

	return r
}

// doRequest sends body as JSON. A string body is sent verbatim so tests can
// post malformed documents.
func doRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("expected status %d, got %d, body=%s", want, w.Code, w.Body.String())
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	expectStatus(t, w, status)

	body := decodeBody[map[string]any](t, w)
	if body["error"] != message {
		t.Fatalf("expected error %q, got %v", message, body["error"])
	}
}

func expectErrors(t *testing.T, w *httptest.ResponseRecorder, want ...string) {
	t.Helper()

	expectStatus(t, w, http.StatusBadRequest)

	body := decodeBody[struct {
		Errors []string `json:"errors"`
	}](t, w)

	if strings.Join(body.Errors, "|") != strings.Join(want, "|") {
		t.Fatalf("expected errors %q, got %q", want, body.Errors)
	}
}
