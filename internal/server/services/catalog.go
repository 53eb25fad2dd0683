package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/logging"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/books"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/repomanager"
	"github.com/shelfkeeper/shelfkeeper/internal/session"
	"github.com/shelfkeeper/shelfkeeper/internal/validation"
)

// BookInput carries the raw book form fields. Numeric values arrive as
// strings so that validation failures can be reported per field instead of
// failing at decode time.
type BookInput struct {
	Title     string
	Author    string
	Publisher string
	Year      string
	Pages     string
	Series    string
	Binding   string
	Row       string
	ShelfUnit string
	Shelf     string
}

// CatalogService implements the book catalog operations. Every operation
// requires an authenticated session.
type CatalogService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CatalogService {
	return &CatalogService{db: db, repos: m, logger: logger}
}

// List returns all books in the catalog.
func (s *CatalogService) List(ctx context.Context, sess *session.Session) ([]*models.Book, error) {
	if err := s.requireAuth(sess); err != nil {
		return nil, err
	}
	items, err := s.repos.Books(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return items, nil
}

// Get returns a single book by ID.
func (s *CatalogService) Get(ctx context.Context, sess *session.Session, id string) (*models.Book, error) {
	if err := s.requireAuth(sess); err != nil {
		return nil, err
	}
	book, err := s.repos.Books(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return book, nil
}

// Add validates the input and inserts a new book.
func (s *CatalogService) Add(ctx context.Context, sess *session.Session, in BookInput) (*models.Book, error) {
	if err := s.requireAuth(sess); err != nil {
		return nil, err
	}
	book, err := parseBook(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repos.Books(s.db).Create(ctx, book)
	if err != nil {
		return nil, common.ErrorInternal
	}
	s.logger.Info(ctx, "book added", "title", created.Title, "id", created.ID)
	return created, nil
}

// Update validates the input and overwrites the book with the given ID.
func (s *CatalogService) Update(ctx context.Context, sess *session.Session, id string, in BookInput) error {
	if err := s.requireAuth(sess); err != nil {
		return err
	}
	book, err := parseBook(in)
	if err != nil {
		return err
	}
	book.ID = id
	if err := s.repos.Books(s.db).Update(ctx, book); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// Delete removes the book with the given ID.
func (s *CatalogService) Delete(ctx context.Context, sess *session.Session, id string) error {
	if err := s.requireAuth(sess); err != nil {
		return err
	}
	if err := s.repos.Books(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	s.logger.Info(ctx, "book deleted", "id", id)
	return nil
}

// Search returns books matching the non-empty filter fields. An empty filter
// matches everything.
func (s *CatalogService) Search(ctx context.Context, sess *session.Session, filter books.SearchFilter) ([]*models.Book, error) {
	if err := s.requireAuth(sess); err != nil {
		return nil, err
	}
	items, err := s.repos.Books(s.db).Search(ctx, filter)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return items, nil
}

func (s *CatalogService) requireAuth(sess *session.Session) error {
	if !sess.IsAuthenticated() {
		sess.Clear()
		return common.ErrNotAuthenticated
	}
	return nil
}

// parseBook validates the raw form fields and converts them into a Book.
// All field failures are reported together.
func parseBook(in BookInput) (*models.Book, error) {
	var errs validation.Errors

	if in.Title == "" {
		errs.Add("title", "must not be empty")
	}
	if !validation.FreeText(in.Author) {
		errs.Add("author", "must contain letters, spaces, and punctuation only")
	}
	if !validation.FreeText(in.Publisher) {
		errs.Add("publisher", "must contain letters, spaces, and punctuation only")
	}
	if in.Series != "" && !validation.FreeText(in.Series) {
		errs.Add("series", "must contain letters, spaces, and punctuation only")
	}
	if !validation.Name(in.Binding) {
		errs.Add("binding", "must contain letters only")
	}

	if !validation.BookYear(in.Year) {
		errs.Add("year", "must be between 1 and the current year")
	}
	if !validation.PositiveNumber(in.Pages) {
		errs.Add("pages", "must be a positive number")
	}
	if !validation.PositiveNumber(in.Row) {
		errs.Add("row", "must be a positive number")
	}
	if !validation.PositiveNumber(in.ShelfUnit) {
		errs.Add("shelfUnit", "must be a positive number")
	}
	if !validation.PositiveNumber(in.Shelf) {
		errs.Add("shelf", "must be a positive number")
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	// Atoi cannot fail here, the fields already passed validation.
	year, _ := strconv.Atoi(in.Year)
	pages, _ := strconv.Atoi(in.Pages)
	row, _ := strconv.Atoi(in.Row)
	shelfUnit, _ := strconv.Atoi(in.ShelfUnit)
	shelf, _ := strconv.Atoi(in.Shelf)

	return &models.Book{
		Title:     in.Title,
		Author:    in.Author,
		Publisher: in.Publisher,
		Year:      year,
		Pages:     pages,
		Series:    in.Series,
		Binding:   in.Binding,
		Row:       row,
		ShelfUnit: shelfUnit,
		Shelf:     shelf,
	}, nil
}
