package utils

import (
	"fmt"
	"regexp"
	"unicode"
)

var (
	// Permissive on purpose: anything non-blank behind http(s)://.
	longURLPattern     = regexp.MustCompile(`^https?://\S+$`)
	shortCodePattern   = regexp.MustCompile(`^[0-9A-Za-z]+$`)
	passwordDigit      = regexp.MustCompile(`\d`)
	passwordUppercase  = regexp.MustCompile(`[A-Z]`)
	passwordSpecialSet = regexp.MustCompile(`[!@#$%^&*(),.:<>|?]`)
)

// ValidateShortCode rejects codes the encoder could never have produced.
func ValidateShortCode(shortCode string) error {
	if shortCode == "" {
		return fmt.Errorf("error.shortcode_required")
	}

	if ContainsWhitespace(shortCode) {
		return fmt.Errorf("error.shortcode_cannot_contain_spaces")
	}

	if !shortCodePattern.MatchString(shortCode) {
		return fmt.Errorf("error.shortcode_invalid")
	}

	return nil
}

// ValidateLongURL checks the raw URL submitted for shortening.
func ValidateLongURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("error.url_required")
	}

	if len(rawURL) > 200 {
		return fmt.Errorf("error.url_max_length")
	}

	if !longURLPattern.MatchString(rawURL) {
		return fmt.Errorf("error.url_invalid")
	}

	return nil
}

// IsLongURL reports whether rawURL matches the accepted URL pattern.
func IsLongURL(rawURL string) bool {
	return longURLPattern.MatchString(rawURL)
}

// ValidatePassword enforces the password complexity rules. The
// returned error names the first rule that failed.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("error.password_too_short")
	}

	if !passwordUppercase.MatchString(password) {
		return fmt.Errorf("error.password_uppercase_required")
	}

	if !passwordDigit.MatchString(password) {
		return fmt.Errorf("error.password_number_required")
	}

	if !passwordSpecialSet.MatchString(password) {
		return fmt.Errorf("error.password_special_symbol_required")
	}

	return nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
