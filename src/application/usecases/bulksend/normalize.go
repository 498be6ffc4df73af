package bulksend

import "strings"

const (
	DefaultCountryCode   = "91"
	DefaultAddressSuffix = "@c.us"
)

// NumberNormalizer canonicalizes raw phone strings into platform
// addresses. It is a heuristic, not a validator: malformed numbers are
// passed through and rejected (or not) by the platform itself.
type NumberNormalizer struct {
	countryCode   string
	addressSuffix string
}

func NewNumberNormalizer(countryCode string, addressSuffix string) *NumberNormalizer {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if addressSuffix == "" {
		addressSuffix = DefaultAddressSuffix
	}
	return &NumberNormalizer{countryCode: countryCode, addressSuffix: addressSuffix}
}

// Normalize strips every non-digit character, prepends the configured
// country code to bare 10-digit numbers, and appends the platform
// address suffix. Already-prefixed numbers are never double-prefixed.
func (n *NumberNormalizer) Normalize(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	cleaned := digits.String()
	if len(cleaned) == 10 && !strings.HasPrefix(cleaned, n.countryCode) {
		cleaned = n.countryCode + cleaned
	}

	return cleaned + n.addressSuffix
}
