// Package address converts heterogeneous nearby records into display strings
// and deduplicates them.
package address

import (
	"fmt"
	"strings"

	"addressradar/internal/nearby"
)

// Normalize renders a nearby record as a single display string.
// Plain vicinity records are used as-is. Tag records start from
// "<housenumber> <street>" and append city and/or postcode depending on
// which are present:
//
//	both:          "10 Main, Athens 18546"
//	city only:     "10 Main, Athens"
//	postcode only: "10 Main, 18546"
//	neither:       "10 Main"
func Normalize(rec nearby.Record) string {
	if rec.Tags == nil {
		return rec.Vicinity
	}

	base := strings.TrimSpace(fmt.Sprintf("%s %s",
		rec.Tags[nearby.TagHouseNumber], rec.Tags[nearby.TagStreet]))
	city := rec.Tags[nearby.TagCity]
	postcode := rec.Tags[nearby.TagPostcode]

	switch {
	case city != "" && postcode != "":
		return fmt.Sprintf("%s, %s %s", base, city, postcode)
	case city != "":
		return fmt.Sprintf("%s, %s", base, city)
	case postcode != "":
		return fmt.Sprintf("%s, %s", base, postcode)
	default:
		return base
	}
}

// Dedupe removes duplicate display strings, keeping the first occurrence of
// each and preserving input order. Applying it twice yields the same result
// as applying it once.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
