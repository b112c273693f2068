package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone strips everything but digits.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalPhone returns the E.164 form when the number parses as valid for
// the region, otherwise the digit-only form. Validation happens before this
// is called; canonicalization is best-effort.
func CanonicalPhone(raw, region string) string {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return NormalizePhone(raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
