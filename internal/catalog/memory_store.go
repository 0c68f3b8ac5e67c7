package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with in-memory storage. Products are
// immutable after load except for the append-only review list.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]*Product
	order    []string // catalog display order
}

// NewMemoryStore creates a store holding the given products.
func NewMemoryStore(products []Product) *MemoryStore {
	s := &MemoryStore{
		products: make(map[string]*Product, len(products)),
		order:    make([]string, 0, len(products)),
	}
	for i := range products {
		p := products[i]
		s.products[p.ID] = &p
		s.order = append(s.order, p.ID)
	}
	return s
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		if matches(p, f) {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) AddReview(_ context.Context, productID string, review Review) (*Product, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.products[productID]
	if !exists {
		return nil, ErrProductNotFound
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.Date.IsZero() {
		review.Date = time.Now()
	}

	// Newest review first, matching storefront display order
	p.Reviews = append([]Review{review}, p.Reviews...)
	p.Rating = averageRating(p.Reviews)

	cp := *p
	return &cp, nil
}

func (s *MemoryStore) Excerpt(_ context.Context) ([]ProductExcerpt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ProductExcerpt, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		result = append(result, ProductExcerpt{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Unit:     p.Unit,
			Category: p.Category,
		})
	}
	return result, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func matches(p *Product, f Filter) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
