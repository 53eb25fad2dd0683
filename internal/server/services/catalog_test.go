package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	booksrepo "github.com/shelfkeeper/shelfkeeper/internal/server/repositories/books"
	"github.com/shelfkeeper/shelfkeeper/internal/session"
	"github.com/shelfkeeper/shelfkeeper/internal/validation"
)

type fakeBooksRepo struct {
	createOut *models.Book
	createErr error

	getOut *models.Book
	getErr error

	listOut []*models.Book
	listErr error

	updateErr error
	updated   *models.Book

	deleteErr error
	deletedID string

	searchOut    []*models.Book
	searchErr    error
	searchFilter booksrepo.SearchFilter
}

func (f *fakeBooksRepo) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *b
	out.ID = "22222222-2222-2222-2222-222222222222"
	return &out, nil
}

func (f *fakeBooksRepo) GetByID(ctx context.Context, id string) (*models.Book, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeBooksRepo) List(ctx context.Context) ([]*models.Book, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeBooksRepo) Update(ctx context.Context, b *models.Book) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = b
	return nil
}

func (f *fakeBooksRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

func (f *fakeBooksRepo) Search(ctx context.Context, filter booksrepo.SearchFilter) ([]*models.Book, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	f.searchFilter = filter
	return f.searchOut, nil
}

func newCatalogService(t *testing.T, repo *fakeBooksRepo) *CatalogService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewCatalogService(db, &fakeRepoManager{b: repo}, nopLogger())
}

func validBookInput() BookInput {
	return BookInput{
		Title:     "Lalka",
		Author:    "Bolesław Prus",
		Publisher: "Gebethner i Wolff",
		Year:      "1890",
		Pages:     "600",
		Series:    "",
		Binding:   "twarda",
		Row:       "1",
		ShelfUnit: "2",
		Shelf:     "3",
	}
}

func TestCatalogAdd_Success(t *testing.T) {
	repo := &fakeBooksRepo{}
	s := newCatalogService(t, repo)

	book, err := s.Add(context.Background(), authenticatedSession("anna"), validBookInput())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if book.ID == "" {
		t.Fatalf("expected assigned ID, got %+v", book)
	}
	if book.Year != 1890 || book.Pages != 600 || book.Row != 1 || book.ShelfUnit != 2 || book.Shelf != 3 {
		t.Fatalf("numeric fields not converted: %+v", book)
	}
}

func TestCatalogAdd_ValidationAccumulates(t *testing.T) {
	s := newCatalogService(t, &fakeBooksRepo{})

	in := BookInput{
		Title:     "",
		Author:    "robot-9000",
		Publisher: "!!",
		Year:      "3000",
		Pages:     "-5",
		Binding:   "soft cover", // space not allowed in a single-word field
		Row:       "x",
		ShelfUnit: "0",
		Shelf:     "",
	}
	_, err := s.Add(context.Background(), authenticatedSession("anna"), in)

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("want validation.Errors, got %v", err)
	}
	if len(verrs) != 9 {
		t.Fatalf("want 9 field errors, got %d: %v", len(verrs), verrs)
	}
}

func TestCatalogAdd_RequiresAuth(t *testing.T) {
	s := newCatalogService(t, &fakeBooksRepo{})

	_, err := s.Add(context.Background(), &session.Session{}, validBookInput())
	if !errors.Is(err, common.ErrNotAuthenticated) {
		t.Fatalf("want ErrNotAuthenticated, got %v", err)
	}
}

func TestCatalogList(t *testing.T) {
	repo := &fakeBooksRepo{listOut: []*models.Book{{ID: "b1", Title: "Lalka"}}}
	s := newCatalogService(t, repo)

	items, err := s.List(context.Background(), authenticatedSession("anna"))
	if err != nil || len(items) != 1 || items[0].Title != "Lalka" {
		t.Fatalf("List: got (%v, %v)", items, err)
	}

	if _, err := s.List(context.Background(), &session.Session{}); !errors.Is(err, common.ErrNotAuthenticated) {
		t.Fatalf("want ErrNotAuthenticated, got %v", err)
	}
}

func TestCatalogGet_NotFound(t *testing.T) {
	s := newCatalogService(t, &fakeBooksRepo{getErr: common.ErrorNotFound})

	_, err := s.Get(context.Background(), authenticatedSession("anna"), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestCatalogUpdate_KeepsID(t *testing.T) {
	repo := &fakeBooksRepo{}
	s := newCatalogService(t, repo)

	err := s.Update(context.Background(), authenticatedSession("anna"), "b7", validBookInput())
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if repo.updated == nil || repo.updated.ID != "b7" {
		t.Fatalf("update did not target the requested row: %+v", repo.updated)
	}
}

func TestCatalogDelete(t *testing.T) {
	repo := &fakeBooksRepo{}
	s := newCatalogService(t, repo)

	if err := s.Delete(context.Background(), authenticatedSession("anna"), "b7"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if repo.deletedID != "b7" {
		t.Fatalf("deleted %q", repo.deletedID)
	}

	repo.deleteErr = common.ErrorNotFound
	if err := s.Delete(context.Background(), authenticatedSession("anna"), "nope"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestCatalogSearch_PassesFilter(t *testing.T) {
	repo := &fakeBooksRepo{searchOut: []*models.Book{{Title: "Lalka"}}}
	s := newCatalogService(t, repo)

	filter := booksrepo.SearchFilter{Author: "prus", Year: "189"}
	items, err := s.Search(context.Background(), authenticatedSession("anna"), filter)
	if err != nil || len(items) != 1 {
		t.Fatalf("Search: got (%v, %v)", items, err)
	}
	if repo.searchFilter != filter {
		t.Fatalf("filter not passed through: %+v", repo.searchFilter)
	}
}
