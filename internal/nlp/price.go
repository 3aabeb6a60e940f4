// internal/nlp/price.go
package nlp

import (
	"regexp"
	"strconv"
)

// PriceBounds are the inclusive filter bounds extracted from a price phrase.
// A nil pointer means the bound is absent.
type PriceBounds struct {
	Gte *int
	Lte *int
}

var (
	priceRangeRe = regexp.MustCompile(`(?:entre|de)\s+(\d+)\s*(?:y|a)\s*(\d+)`)
	priceMaxRe   = regexp.MustCompile(`(?:menos de|hasta)\s+(\d+)`)
	priceMinRe   = regexp.MustCompile(`(?:m[áa]s de|desde)\s+(\d+)`)
	priceBareRe  = regexp.MustCompile(`(\d+)`)
)

// ExtractPriceBounds parses a PRECIO entity span. Precedence: explicit range,
// then upper bound, then lower bound. A bare number ("de 200", "precio de
// 200") is treated as a ceiling.
func ExtractPriceBounds(span string) PriceBounds {
	if m := priceRangeRe.FindStringSubmatch(span); m != nil {
		return PriceBounds{Gte: atoiPtr(m[1]), Lte: atoiPtr(m[2])}
	}
	if m := priceMaxRe.FindStringSubmatch(span); m != nil {
		return PriceBounds{Lte: atoiPtr(m[1])}
	}
	if m := priceMinRe.FindStringSubmatch(span); m != nil {
		return PriceBounds{Gte: atoiPtr(m[1])}
	}
	if m := priceBareRe.FindStringSubmatch(span); m != nil {
		return PriceBounds{Lte: atoiPtr(m[1])}
	}
	return PriceBounds{}
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
