package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhoneNumber strips formatting and returns digits only with the
// Indian country code prefix ("91XXXXXXXXXX"), the storage format for profile
// and owner contact numbers. DisplayPhoneNumber renders the "+91 ..." form.
func NormalizePhoneNumber(phoneNumber string) string {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")
	if digits == "" {
		return ""
	}

	if !strings.HasPrefix(digits, "91") || len(digits) == 10 {
		digits = strings.TrimLeft(digits, "0")
		digits = "91" + digits
	}

	return digits
}

// ValidatePhoneNumber checks for a 10-digit Indian mobile number (optionally
// prefixed with the country code); mobile numbers start with 6-9.
func ValidatePhoneNumber(phoneNumber string) bool {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")
	cleaned = strings.TrimPrefix(cleaned, "91")

	if len(cleaned) != 10 {
		return false
	}

	return cleaned[0] >= '6' && cleaned[0] <= '9'
}

// DisplayPhoneNumber formats a stored number for display as +91 XXXXX XXXXX.
func DisplayPhoneNumber(phoneNumber string) string {
	normalized := NormalizePhoneNumber(phoneNumber)
	if len(normalized) == 12 && strings.HasPrefix(normalized, "91") {
		return "+" + normalized[:2] + " " + normalized[2:7] + " " + normalized[7:]
	}
	return phoneNumber
}
