package cart

import (
	"sync"

	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

// Store owns the authoritative set of cart lines. Lines are keyed by
// product id; insertion order is kept for display only.
type Store struct {
	mu    sync.Mutex
	lines map[string]*Line
	order []string
}

func NewStore() *Store {
	return &Store{
		lines: make(map[string]*Line),
	}
}

// AddItem merges quantity into an existing line or inserts a new one.
// Callers supply positive quantities; the HTTP edge and the bundle
// resolver validate before calling.
func (s *Store) AddItem(product catalog.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, exists := s.lines[product.ID]; exists {
		line.Quantity += quantity
		return
	}

	s.lines[product.ID] = &Line{Product: product, Quantity: quantity}
	s.order = append(s.order, product.ID)
}

// RemoveItem decrements the line quantity, deleting the line when it
// reaches zero. Removing an absent product id is a no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, exists := s.lines[productID]
	if !exists {
		return
	}

	if line.Quantity > 1 {
		line.Quantity--
		return
	}

	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Total is the sum of price*quantity over all lines.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Store) totalLocked() int64 {
	var total int64
	for _, line := range s.lines {
		total += line.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities over all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCountLocked()
}

func (s *Store) itemCountLocked() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Clear empties the cart. Used at checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[string]*Line)
	s.order = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linesLocked()
}

func (s *Store) linesLocked() []Line {
	lines := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, *s.lines[id])
	}
	return lines
}

// View composes the full cart state with the fee quote.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Lines:     s.linesLocked(),
		ItemCount: s.itemCountLocked(),
		Quote:     QuoteFor(s.totalLocked()),
	}
}
