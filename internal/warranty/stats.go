package warranty

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"warranty-vault/internal/model"
)

// Summary holds the dashboard headline figures for one product collection.
// Monetary sums treat an absent purchase price as zero.
type Summary struct {
	Total             int             `json:"total"`
	Active            int             `json:"active"`
	ExpiringSoon      int             `json:"expiringSoon"`
	Expired           int             `json:"expired"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	ActiveValue       decimal.Decimal `json:"activeValue"`
	ExpiredValue      decimal.Decimal `json:"expiredValue"`
	AvgWarrantyMonths float64         `json:"avgWarrantyMonths"`
	NextExpiring      *model.Product  `json:"nextExpiring,omitempty"`
	NextExpiringDays  int             `json:"nextExpiringDays"`
}

// Summarize computes the summary in a single pass. "Active value" is the
// summed price of everything not yet expired, i.e. still under some form of
// warranty. NextExpiring is the non-expired product with the fewest days
// remaining; ties keep the earlier product in input order. It is nil when
// every product has expired or the collection is empty.
func Summarize(products []model.Product, now time.Time) Summary {
	s := Summary{
		Total:        len(products),
		TotalValue:   decimal.Zero,
		ActiveValue:  decimal.Zero,
		ExpiredValue: decimal.Zero,
	}

	monthsSum := 0
	nextDays := 0
	for i := range products {
		p := &products[i]
		days := DaysUntilExpiry(p, now)
		price := p.PriceOrZero()

		s.TotalValue = s.TotalValue.Add(price)
		monthsSum += effectiveMonths(p)

		switch StatusForDays(days) {
		case StatusExpired:
			s.Expired++
			s.ExpiredValue = s.ExpiredValue.Add(price)
		case StatusExpiringSoon:
			s.ExpiringSoon++
			s.ActiveValue = s.ActiveValue.Add(price)
		default:
			s.Active++
			s.ActiveValue = s.ActiveValue.Add(price)
		}

		if days >= 0 && (s.NextExpiring == nil || days < nextDays) {
			s.NextExpiring = p
			nextDays = days
		}
	}

	if len(products) > 0 {
		s.AvgWarrantyMonths = float64(monthsSum) / float64(len(products))
	}
	s.NextExpiringDays = nextDays
	return s
}

// CategoryGroup is one row of the per-category breakdown. A nil CategoryID
// is the synthetic bucket for uncategorised products.
type CategoryGroup struct {
	CategoryID *uuid.UUID      `json:"categoryId"`
	Count      int             `json:"count"`
	Value      decimal.Decimal `json:"value"`
}

// CategoryBreakdown groups products by category, ordering groups by
// descending count. Groups with equal counts keep their first-encounter
// order, so the result is deterministic for a given input order.
func CategoryBreakdown(products []model.Product) []CategoryGroup {
	index := make(map[uuid.UUID]int)
	groups := make([]CategoryGroup, 0)

	for i := range products {
		p := &products[i]
		var key uuid.UUID // zero value doubles as the "other" bucket
		var ref *uuid.UUID
		if p.CategoryID != nil {
			key = *p.CategoryID
			ref = p.CategoryID
		}

		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, CategoryGroup{CategoryID: ref, Value: decimal.Zero})
		}
		groups[gi].Count++
		groups[gi].Value = groups[gi].Value.Add(p.PriceOrZero())
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Count > groups[b].Count
	})
	return groups
}

// MonthCount is one bar of the monthly purchase histogram.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// MonthlyPurchases buckets products by purchase month and returns the most
// recent 12 distinct months in chronological order.
func MonthlyPurchases(products []model.Product) []MonthCount {
	counts := make(map[string]int)
	for i := range products {
		counts[products[i].PurchaseDate.Format("2006-01")]++
	}

	months := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		months = append(months, MonthCount{Month: month, Count: count})
	}
	sort.Slice(months, func(a, b int) bool {
		return months[a].Month < months[b].Month
	})

	if len(months) > 12 {
		months = months[len(months)-12:]
	}
	return months
}

// UpcomingExpiries returns the expiring-soon products ordered by fewest days
// remaining first, capped at limit (unlimited when limit <= 0). The input is
// not modified.
func UpcomingExpiries(products []model.Product, now time.Time, limit int) []model.Product {
	type entry struct {
		product model.Product
		days    int
	}
	entries := make([]entry, 0)
	for i := range products {
		days := DaysUntilExpiry(&products[i], now)
		if StatusForDays(days) == StatusExpiringSoon {
			entries = append(entries, entry{product: products[i], days: days})
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].days < entries[b].days
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	result := make([]model.Product, len(entries))
	for i, e := range entries {
		result[i] = e.product
	}
	return result
}

// RecentlyAdded returns products ordered by newest record first, capped at
// limit (unlimited when limit <= 0). Ordering uses CreatedAt, not the
// purchase date. The input is not modified.
func RecentlyAdded(products []model.Product, limit int) []model.Product {
	result := make([]model.Product, len(products))
	copy(result, products)

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// ExpiryBuckets groups the expiring-soon products into urgency tiers. Each
// tier is ordered by fewest days remaining first.
type ExpiryBuckets struct {
	Week    []model.Product `json:"week"`    // 0-7 days left
	Month   []model.Product `json:"month"`   // 8-30 days left
	Quarter []model.Product `json:"quarter"` // 31-90 days left
}

// BucketExpiries tiers the expiring-soon products by how soon they expire.
func BucketExpiries(products []model.Product, now time.Time) ExpiryBuckets {
	expiring := UpcomingExpiries(products, now, 0)

	var b ExpiryBuckets
	for i := range expiring {
		days := DaysUntilExpiry(&expiring[i], now)
		switch {
		case days <= 7:
			b.Week = append(b.Week, expiring[i])
		case days <= 30:
			b.Month = append(b.Month, expiring[i])
		default:
			b.Quarter = append(b.Quarter, expiring[i])
		}
	}
	return b
}
