package catalog

import (
	"fmt"
	"sync"
)

// WindowItem bundles a product with its index in the active view.
type WindowItem struct {
	Item      Product
	ViewIndex int
}

// State manages the catalog list, including the full list, the filtered list
// and the filter currently applied.
type State struct {
	mu sync.RWMutex

	// The original, full list of products
	products Products

	// The list when a filter is active
	filtered Products
	// Flag to indicate if filtering is active
	isFiltered bool
	// The selectors currently applied
	filter Filter
}

// NewState creates an empty catalog state.
func NewState() *State {
	return &State{
		products: make(Products, 0),
		filter:   NoFilter,
	}
}

// Replace swaps the full product list and re-applies the current filter.
func (s *State) Replace(items Products) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(Products(nil), items...)
	if s.isFiltered {
		s.filtered = Apply(s.filter, s.products)
	}
}

// All returns a copy of the full list.
func (s *State) All() Products {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(Products(nil), s.products...)
}

// activeUnlocked returns the active list. It must be called with the lock held.
func (s *State) activeUnlocked() Products {
	if s.isFiltered {
		return s.filtered
	}
	return s.products
}

// Count returns the number of visible products.
func (s *State) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activeUnlocked())
}

// Empty reports whether the current filter hides every product.
func (s *State) Empty() bool {
	return s.Count() == 0
}

// Filter returns the selectors currently applied.
func (s *State) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// IsFiltered returns true if a filter is active.
func (s *State) IsFiltered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isFiltered
}

// ApplyFilter narrows the visible list. A filter that matches everything clears it.
func (s *State) ApplyFilter(f Filter) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.IsZero() {
		s.clearUnlocked()
		return len(s.products)
	}
	s.filter = f
	s.filtered = Apply(f, s.products)
	s.isFiltered = true
	return len(s.filtered)
}

// ClearFilter resets every selector and shows the full list again.
func (s *State) ClearFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearUnlocked()
}

func (s *State) clearUnlocked() {
	s.isFiltered = false
	s.filter = NoFilter
	s.filtered = nil
}

// Get returns the product at a view index of the active list.
func (s *State) Get(viewIndex int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.activeUnlocked()
	if viewIndex < 0 || viewIndex >= len(list) {
		return Product{}, fmt.Errorf("catalog index %d out of bounds", viewIndex)
	}
	return list[viewIndex], nil
}

// Window returns up to size visible products starting at start. A start past
// the end yields an empty window.
func (s *State) Window(start, size int) []WindowItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.activeUnlocked()
	count := len(list)
	if start < 0 {
		start = 0
	}
	if size <= 0 || start >= count {
		return []WindowItem{}
	}
	end := min(start+size, count)

	items := make([]WindowItem, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, WindowItem{Item: list[i], ViewIndex: i})
	}
	return items
}

// Pages returns how many pages of size cards the visible products fill.
func (s *State) Pages(size int) int {
	return PageCount(s.Count(), size)
}
