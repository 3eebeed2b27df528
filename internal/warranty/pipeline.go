package warranty

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"warranty-vault/internal/model"
)

// SortKey selects the ordering of the product list view.
type SortKey string

const (
	SortExpiry       SortKey = "expiry"        // soonest effective expiry first
	SortName         SortKey = "name"          // locale-aware ascending
	SortPurchaseDate SortKey = "purchase_date" // most recent purchase first
	SortPrice        SortKey = "price"         // most expensive first, no price sorts as 0
)

// StatusFilter narrows the list to one warranty status. The zero value and
// FilterAll keep everything.
type StatusFilter string

const FilterAll StatusFilter = "all"

// Query describes one invocation of the search/filter/sort pipeline.
// Language is a BCP 47 tag used for name collation; an empty or unknown tag
// falls back to the root collation.
type Query struct {
	Search     string
	Status     StatusFilter
	CategoryID *uuid.UUID
	SortBy     SortKey
	Language   string
}

// Apply runs the fixed pipeline over a product snapshot: text search, then
// status filter, then category filter, then a stable sort. The input slice
// is never modified; the result is a fresh slice. Running the same query
// twice over the same snapshot yields identical output, and products with
// equal sort keys keep their relative input order.
func Apply(products []model.Product, now time.Time, q Query) []model.Product {
	result := make([]model.Product, 0, len(products))

	query := strings.ToLower(strings.TrimSpace(q.Search))
	for i := range products {
		p := &products[i]
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		if q.Status != "" && q.Status != FilterAll && StatusOf(p, now) != Status(q.Status) {
			continue
		}
		if q.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *q.CategoryID) {
			continue
		}
		result = append(result, products[i])
	}

	sortProducts(result, now, q)
	return result
}

// matchesSearch reports whether any searchable field of p contains the
// lower-cased query substring. Absent optional fields never match.
func matchesSearch(p *model.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, field := range []*string{p.Brand, p.Model, p.RetailerName} {
		if field != nil && strings.Contains(strings.ToLower(*field), query) {
			return true
		}
	}
	return false
}

func sortProducts(products []model.Product, now time.Time, q Query) {
	switch q.SortBy {
	case SortName:
		c := collate.New(language.Make(q.Language))
		sort.SliceStable(products, func(a, b int) bool {
			return c.CompareString(products[a].Name, products[b].Name) < 0
		})
	case SortPurchaseDate:
		sort.SliceStable(products, func(a, b int) bool {
			return products[a].PurchaseDate.After(products[b].PurchaseDate)
		})
	case SortPrice:
		sort.SliceStable(products, func(a, b int) bool {
			return products[a].PriceOrZero().GreaterThan(products[b].PriceOrZero())
		})
	case SortExpiry:
		fallthrough
	default:
		// Precompute expiries so each product's month arithmetic runs once.
		expiries := make([]time.Time, len(products))
		for i := range products {
			expiries[i] = EffectiveExpiry(&products[i])
		}
		indices := make([]int, len(products))
		for i := range indices {
			indices[i] = i
		}
		sort.SliceStable(indices, func(a, b int) bool {
			return expiries[indices[a]].Before(expiries[indices[b]])
		})
		reorder(products, indices)
	}
}

// reorder permutes products in place so that products[i] becomes the element
// previously at indices[i].
func reorder(products []model.Product, indices []int) {
	tmp := make([]model.Product, len(products))
	for i, idx := range indices {
		tmp[i] = products[idx]
	}
	copy(products, tmp)
}
