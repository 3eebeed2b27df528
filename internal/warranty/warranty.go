// Package warranty implements the pure warranty computation engine: expiry
// dates, status classification, progress, collection aggregates and the list
// filter/sort pipeline. Every function is a pure function of its inputs; the
// current time is always passed in by the caller so a single "now" snapshot
// governs one logical operation (dashboard render, analytics run, list query).
package warranty

import (
	"time"

	"warranty-vault/internal/model"
)

// Status is the derived warranty state of a product. It is never stored; it
// is recomputed from the purchase date and the caller-supplied current time.
type Status string

const (
	StatusActive       Status = "active"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// ExpiringSoonWindowDays is the number of remaining days at or below which a
// product counts as expiring soon. The boundary is inclusive: exactly 90 days
// left is expiring_soon, 91 is active.
const ExpiringSoonWindowDays = 90

// AddMonths adds n calendar months to t, clamping the day-of-month to the
// last valid day of the target month (2024-01-31 + 1 month = 2024-02-29).
// The result is midnight UTC; only the calendar date of t is significant.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	// time.Date normalises month overflow, so m+n may exceed December.
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}

// CommercialExpiry returns the end of the seller-declared warranty term.
func CommercialExpiry(p *model.Product) time.Time {
	return AddMonths(p.PurchaseDate, p.WarrantyMonths)
}

// StatutoryExpiry returns the end of the legally mandated minimum term.
func StatutoryExpiry(p *model.Product) time.Time {
	return AddMonths(p.PurchaseDate, p.EUStatutoryMonths)
}

// EffectiveExpiry returns the end of the effective warranty window: the
// longer of the commercial and statutory terms. Neither operand is assumed
// to be the larger one.
func EffectiveExpiry(p *model.Product) time.Time {
	return AddMonths(p.PurchaseDate, effectiveMonths(p))
}

func effectiveMonths(p *model.Product) int {
	if p.WarrantyMonths > p.EUStatutoryMonths {
		return p.WarrantyMonths
	}
	return p.EUStatutoryMonths
}

// DaysUntil returns the number of whole calendar days from now until expiry.
// Both instants are normalised to their UTC calendar date first, so the
// result is stable for any two calls within the same day: negative means
// already expired, zero means it expires today.
func DaysUntil(expiry, now time.Time) int {
	return int(dateOnly(expiry).Sub(dateOnly(now)).Hours() / 24)
}

// DaysUntilExpiry returns the whole days remaining in the effective warranty
// window of p.
func DaysUntilExpiry(p *model.Product, now time.Time) int {
	return DaysUntil(EffectiveExpiry(p), now)
}

// StatusForDays maps a remaining-day count onto a warranty status.
func StatusForDays(days int) Status {
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringSoonWindowDays:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}

// StatusOf returns the warranty status of p at the given time.
func StatusOf(p *model.Product, now time.Time) Status {
	return StatusForDays(DaysUntilExpiry(p, now))
}

// Progress returns the elapsed fraction of the effective warranty window as
// a percentage in [0, 100]. Expired products always report 100, as does a
// degenerate zero-length window.
func Progress(p *model.Product, now time.Time) float64 {
	expiry := EffectiveExpiry(p)
	if DaysUntil(expiry, now) < 0 {
		return 100
	}
	total := expiry.Sub(dateOnly(p.PurchaseDate))
	if total <= 0 {
		return 100
	}
	elapsed := dateOnly(now).Sub(dateOnly(p.PurchaseDate))
	pct := float64(elapsed) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Assessment bundles every per-product derived value exposed to callers.
type Assessment struct {
	Status           Status    `json:"status"`
	DaysUntilExpiry  int       `json:"daysUntilExpiry"`
	CommercialExpiry time.Time `json:"commercialExpiry"`
	StatutoryExpiry  time.Time `json:"euStatutoryExpiry"`
	EffectiveExpiry  time.Time `json:"effectiveExpiry"`
	ProgressPercent  float64   `json:"progressPercent"`
}

// Assess derives the full warranty assessment of p at the given time.
func Assess(p *model.Product, now time.Time) Assessment {
	effective := EffectiveExpiry(p)
	days := DaysUntil(effective, now)
	return Assessment{
		Status:           StatusForDays(days),
		DaysUntilExpiry:  days,
		CommercialExpiry: CommercialExpiry(p),
		StatutoryExpiry:  StatutoryExpiry(p),
		EffectiveExpiry:  effective,
		ProgressPercent:  Progress(p, now),
	}
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
