// Package eligibility decides which resorts a contract may book.
//
// Direct contracts may book every resort. Resale contracts at a restricted
// resort may book only their home resort; resale contracts elsewhere may book
// any resort that is not restricted.
package eligibility

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PurchaseType is how a contract was bought.
type PurchaseType string

// Purchase types. An empty value is treated as Direct.
const (
	Direct PurchaseType = "direct"
	Resale PurchaseType = "resale"
)

// Sentinel errors.
var (
	ErrUnknownPurchaseType = errors.New("unknown purchase type")
	ErrIneligibleResort    = errors.New("resort not eligible for contract")
)

// DefaultRestricted lists the resorts whose resale contracts are home-only.
var DefaultRestricted = []string{"cabins_fort_wilderness", "disneyland_hotel", "riviera"}

// ParsePurchaseType accepts direct, resale or an empty string.
func ParsePurchaseType(s string) (PurchaseType, error) {
	switch PurchaseType(strings.ToLower(strings.TrimSpace(s))) {
	case "", Direct:
		return Direct, nil
	case Resale:
		return Resale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPurchaseType, s)
}

// UnmarshalText validates the purchase type when decoding JSON or YAML.
func (p *PurchaseType) UnmarshalText(b []byte) error {
	v, err := ParsePurchaseType(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Rules holds the restricted resort set.
type Rules struct {
	restricted map[string]struct{}
}

// NewRules builds rules from a restricted resort list. Blank entries are ignored.
func NewRules(restricted []string) *Rules {
	r := &Rules{restricted: make(map[string]struct{}, len(restricted))}
	for _, slug := range restricted {
		if slug = strings.TrimSpace(slug); slug != "" {
			r.restricted[slug] = struct{}{}
		}
	}
	return r
}

// DefaultRules returns rules over DefaultRestricted.
func DefaultRules() *Rules {
	return NewRules(DefaultRestricted)
}

// Restricted returns the restricted resorts, sorted.
func (r *Rules) Restricted() []string {
	out := make([]string, 0, len(r.restricted))
	for slug := range r.restricted {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// IsRestricted reports whether resort's resale contracts are home-only.
func (r *Rules) IsRestricted(resort string) bool {
	_, ok := r.restricted[resort]
	return ok
}

// Eligible reports whether a contract at home bought as pt may book resort.
func (r *Rules) Eligible(home string, pt PurchaseType, resort string) bool {
	if pt != Resale {
		return true
	}
	if r.IsRestricted(home) {
		return resort == home
	}
	return !r.IsRestricted(resort)
}

// Filter returns the resorts in candidates the contract may book, in order.
func (r *Rules) Filter(home string, pt PurchaseType, candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, resort := range candidates {
		if r.Eligible(home, pt, resort) {
			out = append(out, resort)
		}
	}
	return out
}

// Check returns ErrIneligibleResort when the contract may not book resort.
func (r *Rules) Check(home string, pt PurchaseType, resort string) error {
	if r.Eligible(home, pt, resort) {
		return nil
	}
	if pt == "" {
		pt = Direct
	}
	return fmt.Errorf("%w: %s (%s at %s)", ErrIneligibleResort, resort, pt, home)
}
