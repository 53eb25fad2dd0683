package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/dbx"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookColumns = `id, title, author, publisher, series, binding, publication_year, page_count, row_number, shelf_unit, shelf`

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {

	query :=
		`INSERT INTO books (id, title, author, publisher, series, binding, publication_year, page_count, row_number, shelf_unit, shelf)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), book.Title, book.Author, book.Publisher, book.Series,
		book.Binding, book.Year, book.Pages, book.Row, book.ShelfUnit, book.Shelf).
		Scan(&book.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Publisher, &book.Series,
		&book.Binding, &book.Year, &book.Pages, &book.Row, &book.ShelfUnit, &book.Shelf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title`
	return r.queryBooks(ctx, query)
}

func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) error {

	query :=
		`UPDATE books
		 SET title = $1, author = $2, publisher = $3, series = $4, binding = $5,
		     publication_year = $6, page_count = $7, row_number = $8, shelf_unit = $9, shelf = $10
		 WHERE id = $11
		 `

	res, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Publisher, book.Series, book.Binding,
		book.Year, book.Pages, book.Row, book.ShelfUnit, book.Shelf, book.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return r.requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return r.requireRow(res)
}

// Search composes a WHERE clause from the non-empty filter fields. Every
// value travels as a bind parameter; the query text only ever contains
// column names and placeholders.
func (r *PostgresRepository) Search(ctx context.Context, filter SearchFilter) ([]*models.Book, error) {

	var (
		conds []string
		args  []any
	)

	addText := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+strings.ToLower(value)+"%")
		conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE $%d", column, len(args)))
	}
	addNumeric := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		conds = append(conds, fmt.Sprintf("%s::text LIKE $%d", column, len(args)))
	}

	addText("title", filter.Title)
	addText("author", filter.Author)
	addText("publisher", filter.Publisher)
	addText("series", filter.Series)
	addText("binding", filter.Binding)
	addNumeric("publication_year", filter.Year)
	addNumeric("page_count", filter.Pages)
	addNumeric("row_number", filter.Row)
	addNumeric("shelf_unit", filter.ShelfUnit)
	addNumeric("shelf", filter.Shelf)

	query := `SELECT ` + bookColumns + ` FROM books`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY title"

	return r.queryBooks(ctx, query, args...)
}

func (r *PostgresRepository) queryBooks(ctx context.Context, query string, args ...any) ([]*models.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Book
	for rows.Next() {
		book := &models.Book{}
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Author, &book.Publisher, &book.Series,
			&book.Binding, &book.Year, &book.Pages, &book.Row, &book.ShelfUnit, &book.Shelf); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
