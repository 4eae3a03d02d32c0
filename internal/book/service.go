package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/redmonkez12/bookstore-api/internal/logging"
)

// Store is the catalog persistence used by Service. *Repository satisfies it.
type Store interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int64) (*Book, error)
	Search(ctx context.Context, query string) ([]Book, error)
	TopRated(ctx context.Context, limit int) ([]Book, error)
	Create(ctx context.Context, in CreateInput) (*Book, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles catalog business logic
type Service struct {
	store         Store
	cache         Cache
	logger        *logging.Logger
	topRatedLimit int
}

// NewService creates a catalog service. cache may be nil.
func NewService(store Store, cache Cache, logger *logging.Logger, topRatedLimit int) *Service {
	if cache == nil {
		cache = nopCache{}
	}
	return &Service{
		store:         store,
		cache:         cache,
		logger:        logger,
		topRatedLimit: topRatedLimit,
	}
}

// ListAll returns the whole catalog ordered by id
func (s *Service) ListAll(ctx context.Context) ([]Book, error) {
	return s.store.List(ctx)
}

// GetByID returns ErrNotFound when id does not resolve
func (s *Service) GetByID(ctx context.Context, id int64) (*Book, error) {
	return s.store.GetByID(ctx, id)
}

// Search matches query against title and author, case-insensitively.
// No match yields an empty slice, not an error.
func (s *Service) Search(ctx context.Context, query string) ([]Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	books, err := s.store.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}

	return books, nil
}

// TopRated returns the highest rated books, served from cache when possible.
// Cache errors are logged and never fail the request.
func (s *Service) TopRated(ctx context.Context) ([]Book, error) {
	cached, ok, err := s.cache.GetTopRated(ctx, s.topRatedLimit)
	if err != nil {
		s.logger.Warn("top rated cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	books, err := s.store.TopRated(ctx, s.topRatedLimit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetTopRated(ctx, s.topRatedLimit, books); err != nil {
		s.logger.Warn("top rated cache write failed", "error", err)
	}

	return books, nil
}

// Create validates and stores a new book
func (s *Service) Create(ctx context.Context, in CreateInput) (*Book, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.invalidate(ctx)
	return created, nil
}

// Delete removes a book; ErrNotFound when id does not resolve
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("top rated cache invalidation failed", "error", err)
	}
}
