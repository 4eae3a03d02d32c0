package book

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("book not found")
	ErrEmptyQuery  = errors.New("search query is required")
	ErrInvalidBook = errors.New("invalid book")
)

type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	PublishedYear int       `json:"published_year,omitempty"`
	Price         float64   `json:"price"`
	Rating        float64   `json:"rating"`
	CoverURL      string    `json:"cover_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateInput holds the fields accepted when adding a book to the catalog
type CreateInput struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	Genre         string  `json:"genre"`
	ISBN          string  `json:"isbn"`
	PublishedYear int     `json:"published_year"`
	Price         float64 `json:"price"`
	Rating        float64 `json:"rating"`
	CoverURL      string  `json:"cover_url"`
}

// Normalize trims surrounding whitespace from the text fields
func (in *CreateInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Description = strings.TrimSpace(in.Description)
	in.Genre = strings.TrimSpace(in.Genre)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.CoverURL = strings.TrimSpace(in.CoverURL)
}

// Validate returns an error wrapping ErrInvalidBook describing the first problem found
func (in CreateInput) Validate() error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidBook)
	case in.Author == "":
		return fmt.Errorf("%w: author is required", ErrInvalidBook)
	case in.Rating < 0 || in.Rating > 5:
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidBook)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidBook)
	case in.PublishedYear < 0:
		return fmt.Errorf("%w: published_year must not be negative", ErrInvalidBook)
	}
	return nil
}
