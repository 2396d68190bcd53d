package catalog

import (
	"sync"

	"github.com/google/uuid"
)

type (
	// Book is a catalog record. The id is immutable once assigned, title and
	// cover can be replaced via Update. Books are never deleted.
	Book struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		CoverURL string `json:"coverUrl,omitempty"`
	}

	// Store keeps every book in memory, preserving insertion order for
	// listings.
	Store struct {
		mutex sync.RWMutex
		books []Book
		byID  map[string]int
	}
)

func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

func (s *Store) Create(title string) Book {
	book := Book{ID: uuid.NewString(), Title: title}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.byID[book.ID] = len(s.books)
	s.books = append(s.books, book)
	return book
}

// List returns all books in creation order.
func (s *Store) List() []Book {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out
}

func (s *Store) Get(id string) (Book, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	idx, found := s.byID[id]
	if !found {
		return Book{}, false
	}
	return s.books[idx], true
}

// Update replaces the title and/or the cover of an existing book. Empty
// arguments leave the corresponding field untouched.
func (s *Store) Update(id string, title string, coverURL string) (Book, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	idx, found := s.byID[id]
	if !found {
		return Book{}, BookNotFound{ID: id}
	}
	if title != "" {
		s.books[idx].Title = title
	}
	if coverURL != "" {
		s.books[idx].CoverURL = coverURL
	}
	return s.books[idx], nil
}
