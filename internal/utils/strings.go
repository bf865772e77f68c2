package utils

import (
	"strings"

	"github.com/google/uuid"
)

// AlnumOnly strips everything but letters and digits. ClickPesa rejects
// order references containing hyphens or other punctuation.
func AlnumOnly(s string) string {
	var out strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// NormalizePhoneTZ converts local numbers to the 255XXXXXXXXX form the
// gateway expects: "0754..." becomes "255754...", "+255754..." loses the
// plus, bare "754..." gains the country code.
func NormalizePhoneTZ(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	p := digits.String()
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "0"):
		return "255" + p[1:]
	case strings.HasPrefix(p, "255"):
		return p
	default:
		return "255" + p
	}
}

// NewOrderReference generates a gateway-safe unique reference like
// "ORD9F2C41AB63D54E21".
func NewOrderReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD" + id[:16]
}
