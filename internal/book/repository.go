package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/bookstore-api/internal/database"
)

// likeEscaper escapes LIKE wildcards so user input matches literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository handles book persistence in PostgreSQL
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns every book in insertion order
func (r *Repository) List(ctx context.Context) ([]Book, error) {
	var rows []database.Book
	err := r.db.NewSelect().
		Model(&rows).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return mapDBBooks(rows), nil
}

// GetByID retrieves a book by ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Book, error) {
	row := new(database.Book)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	book := mapDBBookToModel(row)
	return &book, nil
}

// Search returns books whose title or author contains query, ignoring case
func (r *Repository) Search(ctx context.Context, query string) ([]Book, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"

	var rows []database.Book
	err := r.db.NewSelect().
		Model(&rows).
		Where("title ILIKE ? OR author ILIKE ?", pattern, pattern).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	return mapDBBooks(rows), nil
}

// TopRated returns up to limit books by rating, highest first; equal ratings are ordered by ascending id
func (r *Repository) TopRated(ctx context.Context, limit int) ([]Book, error) {
	var rows []database.Book
	err := r.db.NewSelect().
		Model(&rows).
		Order("rating DESC", "id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list top rated books: %w", err)
	}

	return mapDBBooks(rows), nil
}

// Create inserts a book and returns it with its generated ID
func (r *Repository) Create(ctx context.Context, in CreateInput) (*Book, error) {
	row := mapInputToDB(in)

	_, err := r.db.NewInsert().
		Model(row).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	book := mapDBBookToModel(row)
	return &book, nil
}

// CreateMany inserts books in a single transaction
func (r *Repository) CreateMany(ctx context.Context, inputs []CreateInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	rows := make([]database.Book, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, *mapInputToDB(in))
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&rows).
			Exec(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert books: %w", err)
	}

	return len(rows), nil
}

// Delete removes a book by ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*database.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func mapInputToDB(in CreateInput) *database.Book {
	return &database.Book{
		Title:         in.Title,
		Author:        in.Author,
		Description:   in.Description,
		Genre:         in.Genre,
		ISBN:          in.ISBN,
		PublishedYear: in.PublishedYear,
		Price:         in.Price,
		Rating:        in.Rating,
		CoverURL:      in.CoverURL,
	}
}

func mapDBBooks(rows []database.Book) []Book {
	books := make([]Book, 0, len(rows))
	for i := range rows {
		books = append(books, mapDBBookToModel(&rows[i]))
	}
	return books
}

// mapDBBookToModel converts database model to domain model
func mapDBBookToModel(row *database.Book) Book {
	return Book{
		ID:            row.ID,
		Title:         row.Title,
		Author:        row.Author,
		Description:   row.Description,
		Genre:         row.Genre,
		ISBN:          row.ISBN,
		PublishedYear: row.PublishedYear,
		Price:         row.Price,
		Rating:        row.Rating,
		CoverURL:      row.CoverURL,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
