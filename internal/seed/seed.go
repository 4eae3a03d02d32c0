// Package seed loads book catalogs used to populate an empty store.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/redmonkez12/bookstore-api/internal/book"
)

// defaultCatalog is the catalog loaded when no file is given.
//
//go:embed books.json
var defaultCatalog []byte

// Default returns the embedded catalog.
func Default() ([]book.CreateInput, error) {
	return parse(defaultCatalog)
}

// FromFile reads a catalog from a JSON file holding an array of books.
func FromFile(path string) ([]book.CreateInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a catalog from r.
func Read(r io.Reader) ([]book.CreateInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]book.CreateInput, error) {
	var books []book.CreateInput
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	for i := range books {
		books[i].Normalize()
		if err := books[i].Validate(); err != nil {
			return nil, fmt.Errorf("book %d: %w", i+1, err)
		}
	}

	return books, nil
}
