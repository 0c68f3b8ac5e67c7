package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
	"golang.org/x/sync/singleflight"
)

// Service wraps the authoritative store with a read-through view cache.
// Cache failures are logged and bypassed, never surfaced to callers.
type Service struct {
	store *Store
	cache ViewCache
	sfg   singleflight.Group // Prevents cache stampede
}

// NewService creates a cart service. cache may be nil, in which case
// every read goes to the store directly.
func NewService(store *Store, cache ViewCache) *Service {
	return &Service{
		store: store,
		cache: cache,
	}
}

// Lines returns a copy of the current cart lines in insertion order.
func (s *Service) Lines() []Line {
	return s.store.Lines()
}

// Total is the sum of price*quantity over all lines.
func (s *Service) Total() int64 {
	return s.store.Total()
}

// ItemCount is the sum of quantities over all lines.
func (s *Service) ItemCount() int {
	return s.store.ItemCount()
}

func (s *Service) View(ctx context.Context) (*View, error) {
	if s.cache == nil {
		view := s.store.View()
		return &view, nil
	}

	v, err, _ := s.sfg.Do(viewCacheKey, func() (interface{}, error) {
		view, err := s.cache.Get(ctx)
		if err == nil {
			return view, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cart cache get error: %v", err)
		}

		fresh := s.store.View()

		go func() {
			if errSet := s.cache.Set(context.Background(), &fresh); errSet != nil {
				log.Printf("cart cache set error: %v", errSet)
			}
		}()

		return &fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*View), nil
}

func (s *Service) AddItem(product catalog.Product, quantity int) {
	s.store.AddItem(product, quantity)
	s.invalidate()
}

func (s *Service) RemoveItem(productID string) {
	s.store.RemoveItem(productID)
	s.invalidate()
}

func (s *Service) Clear() {
	s.store.Clear()
	s.invalidate()
}

func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}
