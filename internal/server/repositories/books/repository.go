package books

import (
	"context"

	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

// SearchFilter holds optional catalog filters. Empty fields are ignored;
// text fields match case-insensitively as substrings, numeric fields match
// as substrings of their decimal form, mirroring the search form semantics.
type SearchFilter struct {
	Title     string
	Author    string
	Publisher string
	Series    string
	Binding   string
	Year      string
	Pages     string
	Row       string
	ShelfUnit string
	Shelf     string
}

type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	List(ctx context.Context) ([]*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter SearchFilter) ([]*models.Book, error)
}
