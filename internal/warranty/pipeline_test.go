package warranty

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warranty-vault/internal/model"
)

func named(p model.Product, name string) model.Product {
	p.Name = name
	return p
}

func strPtr(s string) *string { return &s }

func TestApply_Search(t *testing.T) {
	now := date(2025, time.June, 1)

	iphone := named(expiringIn(now, 100), "iPhone 15 Pro")
	tv := named(expiringIn(now, 100), "OLED TV")
	tv.Brand = strPtr("Philips")
	galaxy := named(expiringIn(now, 100), "Galaxy S23")
	washer := named(expiringIn(now, 100), "Washer")
	washer.RetailerName = strPtr("Shipton & Co")

	products := []model.Product{iphone, tv, galaxy, washer}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "Empty query matches everything",
			query:    "",
			expected: []string{"iPhone 15 Pro", "OLED TV", "Galaxy S23", "Washer"},
		},
		{
			name:     "Case-insensitive substring across name, brand and retailer",
			query:    "ip",
			expected: []string{"iPhone 15 Pro", "OLED TV", "Washer"},
		},
		{
			name:     "No match yields an empty result",
			query:    "zzz",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(products, now, Query{Search: tt.query})
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			// Default expiry sort is a no-op here: all share one expiry date,
			// so the stable sort keeps input order.
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestApply_SearchMatchesModelField(t *testing.T) {
	now := date(2025, time.June, 1)
	p := named(expiringIn(now, 100), "Laptop")
	p.Model = strPtr("ThinkPad X1")

	got := Apply([]model.Product{p}, now, Query{Search: "thinkpad"})
	assert.Len(t, got, 1)
}

func TestApply_StatusFilter(t *testing.T) {
	now := date(2025, time.June, 1)
	products := []model.Product{
		named(expiringIn(now, 200), "active one"),
		named(expiringIn(now, 20), "soon one"),
		named(expiringIn(now, -3), "expired one"),
	}

	tests := []struct {
		name     string
		filter   StatusFilter
		expected []string
	}{
		{name: "All keeps everything", filter: FilterAll, expected: []string{"expired one", "soon one", "active one"}},
		{name: "Zero value keeps everything", filter: "", expected: []string{"expired one", "soon one", "active one"}},
		{name: "Active only", filter: StatusFilter(StatusActive), expected: []string{"active one"}},
		{name: "Expiring soon only", filter: StatusFilter(StatusExpiringSoon), expected: []string{"soon one"}},
		{name: "Expired only", filter: StatusFilter(StatusExpired), expected: []string{"expired one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(products, now, Query{Status: tt.filter})
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestApply_CategoryFilter(t *testing.T) {
	now := date(2025, time.June, 1)
	catA := uuid.New()
	catB := uuid.New()

	a := named(expiringIn(now, 100), "in A")
	a.CategoryID = &catA
	b := named(expiringIn(now, 100), "in B")
	b.CategoryID = &catB
	c := named(expiringIn(now, 100), "uncategorised")

	products := []model.Product{a, b, c}

	got := Apply(products, now, Query{CategoryID: &catA})
	require.Len(t, got, 1)
	assert.Equal(t, "in A", got[0].Name)

	// Nil category selector keeps everything, including uncategorised.
	got = Apply(products, now, Query{})
	assert.Len(t, got, 3)
}

func TestApply_Sorts(t *testing.T) {
	now := date(2025, time.June, 1)

	early := named(expiringIn(now, 10), "Zeta")
	early.PurchaseDate = date(2024, time.January, 10)
	late := named(expiringIn(now, 300), "alpha")
	late.PurchaseDate = date(2025, time.March, 1)
	mid := named(expiringIn(now, 100), "Beta")
	mid.PurchaseDate = date(2024, time.August, 15)

	early = priced(early, "10.00")
	late = priced(late, "500.00")
	// mid has no price and sorts as zero.

	// expiringIn pins purchase date, so rebuild expiries from the new dates:
	// sorting by expiry must follow effective expiry, not days-at-creation.
	products := []model.Product{late, early, mid}

	t.Run("Expiry ascending", func(t *testing.T) {
		got := Apply(products, now, Query{SortBy: SortExpiry})
		require.Len(t, got, 3)
		assert.True(t, EffectiveExpiry(&got[0]).Before(EffectiveExpiry(&got[1])))
		assert.True(t, EffectiveExpiry(&got[1]).Before(EffectiveExpiry(&got[2])))
	})

	t.Run("Name ascending is locale-aware and case-insensitive", func(t *testing.T) {
		got := Apply(products, now, Query{SortBy: SortName, Language: "en"})
		names := []string{got[0].Name, got[1].Name, got[2].Name}
		assert.Equal(t, []string{"alpha", "Beta", "Zeta"}, names)
	})

	t.Run("Purchase date descending", func(t *testing.T) {
		got := Apply(products, now, Query{SortBy: SortPurchaseDate})
		assert.Equal(t, "alpha", got[0].Name)
		assert.Equal(t, "Beta", got[1].Name)
		assert.Equal(t, "Zeta", got[2].Name)
	})

	t.Run("Price descending with missing price as zero", func(t *testing.T) {
		got := Apply(products, now, Query{SortBy: SortPrice})
		assert.Equal(t, "alpha", got[0].Name)
		assert.Equal(t, "Zeta", got[1].Name)
		assert.Equal(t, "Beta", got[2].Name)
	})
}

func TestApply_StableOnEqualKeys(t *testing.T) {
	now := date(2025, time.June, 1)

	// Four products with identical prices: price sort must keep input order.
	var products []model.Product
	for _, name := range []string{"one", "two", "three", "four"} {
		products = append(products, priced(named(expiringIn(now, 50), name), "99.00"))
	}

	got := Apply(products, now, Query{SortBy: SortPrice})
	require.Len(t, got, 4)
	for i, name := range []string{"one", "two", "three", "four"} {
		assert.Equal(t, name, got[i].Name)
	}
}

func TestApply_IdempotentAndNonMutating(t *testing.T) {
	now := date(2025, time.June, 1)
	products := []model.Product{
		named(expiringIn(now, 5), "c"),
		named(expiringIn(now, 300), "a"),
		named(expiringIn(now, 50), "b"),
	}
	q := Query{SortBy: SortExpiry}

	first := Apply(products, now, q)
	second := Apply(products, now, q)
	assert.Equal(t, first, second)

	// Source order is untouched.
	assert.Equal(t, "c", products[0].Name)
	assert.Equal(t, "a", products[1].Name)
	assert.Equal(t, "b", products[2].Name)
}

func TestApply_CombinedPipeline(t *testing.T) {
	now := date(2025, time.June, 1)
	cat := uuid.New()

	match := named(expiringIn(now, 15), "iPad Air")
	match.CategoryID = &cat
	wrongStatus := named(expiringIn(now, 400), "iPad Mini")
	wrongStatus.CategoryID = &cat
	wrongCategory := named(expiringIn(now, 15), "iPad Pro")
	noMatch := named(expiringIn(now, 15), "Kindle")
	noMatch.CategoryID = &cat

	products := []model.Product{wrongStatus, noMatch, match, wrongCategory}

	got := Apply(products, now, Query{
		Search:     "ipad",
		Status:     StatusFilter(StatusExpiringSoon),
		CategoryID: &cat,
		SortBy:     SortExpiry,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "iPad Air", got[0].Name)
}
