package utils

import (
	"fmt"
	"strings"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// EncodeBase62 renders n in base 62, most significant digit first,
// without padding. EncodeBase62(0) == "0".
func EncodeBase62(n uint64) string {
	if n == 0 {
		return string(base62Alphabet[0])
	}
	var sb []byte
	for n > 0 {
		sb = append(sb, base62Alphabet[n%62])
		n /= 62
	}
	for i, j := 0, len(sb)-1; i < j; i, j = i+1, j-1 {
		sb[i], sb[j] = sb[j], sb[i]
	}
	return string(sb)
}

// DecodeBase62 is the inverse of EncodeBase62.
func DecodeBase62(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty base62 string")
	}
	var n uint64
	for _, r := range s {
		idx := strings.IndexRune(base62Alphabet, r)
		if idx < 0 {
			return 0, fmt.Errorf("invalid base62 character %q", r)
		}
		n = n*62 + uint64(idx)
	}
	return n, nil
}
