package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"too short", "Ab1!", "error.password_too_short"},
		{"no uppercase", "abcdef1!", "error.password_uppercase_required"},
		{"no digit", "Abcdefg!", "error.password_number_required"},
		{"no special symbol", "Abcdefg1", "error.password_special_symbol_required"},
		{"valid", "Abcdef1!", ""},
		{"valid with other specials", "Passw0rd,", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidatePassword(c.password)
			if c.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, c.wantErr)
			}
		})
	}
}

func TestValidateLongURL(t *testing.T) {
	assert.NoError(t, ValidateLongURL("https://example.com/page"))
	assert.NoError(t, ValidateLongURL("http://example.com"))

	assert.EqualError(t, ValidateLongURL(""), "error.url_required")
	assert.EqualError(t, ValidateLongURL("ftp://example.com"), "error.url_invalid")
	assert.EqualError(t, ValidateLongURL("example.com"), "error.url_invalid")
	assert.EqualError(t, ValidateLongURL("https://bad url.com"), "error.url_invalid")
	assert.EqualError(t, ValidateLongURL("https://example.com/"+strings.Repeat("a", 200)), "error.url_max_length")
}

func TestValidateShortCode(t *testing.T) {
	assert.NoError(t, ValidateShortCode("fxSK"))
	assert.NoError(t, ValidateShortCode("0"))

	assert.EqualError(t, ValidateShortCode(""), "error.shortcode_required")
	assert.EqualError(t, ValidateShortCode("fx SK"), "error.shortcode_cannot_contain_spaces")
	assert.EqualError(t, ValidateShortCode("fx/SK"), "error.shortcode_invalid")
	assert.EqualError(t, ValidateShortCode("fx_SK"), "error.shortcode_invalid")
}
