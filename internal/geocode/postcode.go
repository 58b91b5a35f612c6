package geocode

import "regexp"

// Postal codes are taken to be the first 4-to-5-digit token in the address
// text. Greek postal codes are five digits, but four-digit codes are accepted
// for neighbouring countries.
var postcodePattern = regexp.MustCompile(`\b\d{4,5}\b`)

// ExtractPostcode scans an address for a 4-5 digit token and returns the
// first match. The extracted code is a refinement hint only; callers must not
// enforce it against search results.
func ExtractPostcode(address string) (string, bool) {
	match := postcodePattern.FindString(address)
	if match == "" {
		return "", false
	}
	return match, true
}
