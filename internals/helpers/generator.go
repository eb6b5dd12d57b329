package helper

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// GenPaymentReference builds a provider order reference with the given prefix,
// e.g. "APPFEE-20260828-153002-4F2A7B1C".
func GenPaymentReference(prefix string) string {
	now := time.Now().Format("20060102-150405")
	u := uuid.New().String()
	if len(u) > 8 {
		u = u[:8]
	}
	return prefix + "-" + now + "-" + strings.ToUpper(u)
}

// GenerateRegistrationNumber builds the immutable trainee registration number.
// The program code is derived from the program title so the number stays
// readable on the ID card, e.g. "ATS/WDD/2026/7C41A9".
func GenerateRegistrationNumber(programTitle string) string {
	year := time.Now().Format("2006")
	u := uuid.New().String()
	if len(u) > 6 {
		u = u[:6]
	}
	return fmt.Sprintf("ATS/%s/%s/%s", programCode(programTitle), year, strings.ToUpper(u))
}

// GenerateReceiptNumber builds a unique receipt number from a timestamp plus a
// random suffix.
func GenerateReceiptNumber() string {
	now := time.Now().Format("20060102-150405")
	u := uuid.New().String()
	if len(u) > 8 {
		u = u[:8]
	}
	return "RCP-" + now + "-" + strings.ToUpper(u)
}

// BuildCallbackURL joins the public base URL with the verify path for a
// payment reference. Clients hand this to the provider checkout as the
// post-payment redirect target.
func BuildCallbackURL(baseURL, reference string) string {
	return strings.TrimRight(baseURL, "/") + "/api/u/payments/verify/" + reference
}

// programCode takes the initials of up to three title words, letters only.
// Empty or non-alphabetic titles fall back to "GEN".
func programCode(title string) string {
	var b strings.Builder
	for _, w := range strings.Fields(title) {
		r := []rune(w)[0]
		if !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() >= 3 {
			break
		}
	}
	if b.Len() == 0 {
		return "GEN"
	}
	return b.String()
}
