package book

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryStore mirrors the ordering rules of Repository
type memoryStore struct {
	mu     sync.Mutex
	books  []Book
	nextID int64
	err    error
	calls  map[string]int
}

func newMemoryStore(seed ...CreateInput) *memoryStore {
	s := &memoryStore{calls: make(map[string]int)}
	for _, in := range seed {
		_, _ = s.Create(context.Background(), in)
	}
	s.calls = make(map[string]int)
	return s
}

func (s *memoryStore) List(context.Context) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["List"]++
	if s.err != nil {
		return nil, s.err
	}
	return append([]Book{}, s.books...), nil
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["GetByID"]++
	if s.err != nil {
		return nil, s.err
	}
	for _, b := range s.books {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) Search(_ context.Context, query string) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Search"]++
	if s.err != nil {
		return nil, s.err
	}
	q := strings.ToLower(query)
	var out []Book
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memoryStore) TopRated(_ context.Context, limit int) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["TopRated"]++
	if s.err != nil {
		return nil, s.err
	}
	out := append([]Book{}, s.books...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryStore) Create(_ context.Context, in CreateInput) (*Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Create"]++
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	now := time.Now()
	b := Book{
		ID:            s.nextID,
		Title:         in.Title,
		Author:        in.Author,
		Description:   in.Description,
		Genre:         in.Genre,
		ISBN:          in.ISBN,
		PublishedYear: in.PublishedYear,
		Price:         in.Price,
		Rating:        in.Rating,
		CoverURL:      in.CoverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.books = append(s.books, b)
	return &b, nil
}

func (s *memoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Delete"]++
	if s.err != nil {
		return s.err
	}
	for i, b := range s.books {
		if b.ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type memoryCache struct {
	mu          sync.Mutex
	entries     map[int][]Book
	readErr     error
	writeErr    error
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[int][]Book)}
}

func (c *memoryCache) GetTopRated(_ context.Context, limit int) ([]Book, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	books, ok := c.entries[limit]
	return books, ok, nil
}

func (c *memoryCache) SetTopRated(_ context.Context, limit int, books []Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.entries[limit] = books
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int][]Book)
	c.invalidated++
	return nil
}

func sampleCatalog() []CreateInput {
	return []CreateInput{
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Rating: 3},
		{Title: "Dune", Author: "Frank Herbert", Rating: 5},
		{Title: "Twilight", Author: "Stephenie Meyer", Rating: 1},
	}
}
