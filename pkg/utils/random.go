package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const digits = "0123456789"

// RandomDigits returns n random decimal digits.
func RandomDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return ""
		}
		b[i] = digits[num.Int64()]
	}
	return string(b)
}

// ClientCode builds the short consent code embedded in a client's banner
// script: the first three letters of the name upper-cased, then three digits.
// Names with fewer than three letters are padded with 'X'.
func ClientCode(name string) string {
	var prefix []rune
	for _, r := range name {
		if len(prefix) == 3 {
			break
		}
		if unicode.IsLetter(r) {
			prefix = append(prefix, unicode.ToUpper(r))
		}
	}
	for len(prefix) < 3 {
		prefix = append(prefix, 'X')
	}
	return string(prefix) + RandomDigits(3)
}

// TrimToLength cuts s to at most n runes.
func TrimToLength(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
