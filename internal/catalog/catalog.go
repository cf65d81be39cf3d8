// Package catalog models the product cards and the three-selector filter that narrows them.
package catalog

// All is the selector value that matches every product.
const All = "all"

// Product is one card in the catalog grid.
type Product struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Origin     string  `yaml:"origin"`
	Color      string  `yaml:"color"`
	Quality    string  `yaml:"quality"`
	PricePerKg float64 `yaml:"price_per_kg"`
	Image      string  `yaml:"image"`
}

// Products is a list of catalog cards.
type Products []Product

// Filter holds the value of each selector. Empty values behave like All.
type Filter struct {
	Origin  string
	Color   string
	Quality string
}

// NoFilter matches every product.
var NoFilter = Filter{Origin: All, Color: All, Quality: All}

// IsZero reports whether the filter lets every product through.
func (f Filter) IsZero() bool {
	return matchesAll(f.Origin) && matchesAll(f.Color) && matchesAll(f.Quality)
}

// Match reports whether p satisfies all three selectors.
func (f Filter) Match(p Product) bool {
	return matchField(f.Origin, p.Origin) &&
		matchField(f.Color, p.Color) &&
		matchField(f.Quality, p.Quality)
}

// Apply returns the products that match the filter, preserving order.
func Apply(f Filter, items Products) Products {
	out := make(Products, 0, len(items))
	for _, p := range items {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Options returns the distinct values of a field in first-seen order, prefixed by All.
// It is used to build the selector choices.
func Options(items Products, field func(Product) string) []string {
	seen := map[string]bool{}
	opts := []string{All}
	for _, p := range items {
		v := field(p)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, v)
	}
	return opts
}

// Next cycles to the option after current, wrapping around.
func Next(opts []string, current string) string {
	if len(opts) == 0 {
		return All
	}
	for i, o := range opts {
		if o == current {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

// PageCount returns how many pages of size items count items fill. An empty
// list still has one (empty) page.
func PageCount(count, size int) int {
	if count <= 0 || size <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ClampPage keeps a page index inside [0, PageCount(count, size)).
func ClampPage(page, count, size int) int {
	last := PageCount(count, size) - 1
	if page > last {
		return last
	}
	if page < 0 {
		return 0
	}
	return page
}

func matchesAll(v string) bool {
	return v == "" || v == All
}

func matchField(want, got string) bool {
	return matchesAll(want) || want == got
}
