package cnab

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/boddenberg/pj-collections-go/internal/domain"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fixed-width field helpers for bank layouts. Every helper returns exactly
// size characters.

// Numeric keeps only the digits of v and left-pads them with zeros. When
// longer than size the rightmost digits are kept.
func Numeric(v string, size int) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, v)
	if len(digits) > size {
		return digits[len(digits)-size:]
	}
	return strings.Repeat("0", size-len(digits)) + digits
}

// Int formats a non-negative integer as a zero-padded numeric field.
func Int(v int, size int) string {
	if v < 0 {
		v = -v
	}
	return Numeric(strconv.Itoa(v), size)
}

// Money formats an amount in centavos without a decimal separator.
func Money(c domain.Cents, size int) string {
	v := int64(c)
	if v < 0 {
		v = -v
	}
	return Numeric(strconv.FormatInt(v, 10), size)
}

// Alpha uppercases v, removes accents, blanks characters banks reject and
// right-pads (or truncates) to size.
func Alpha(v string, size int) string {
	s, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), v)
	if err != nil {
		s = v
	}

	s = strings.Map(func(r rune) rune {
		r = unicode.ToUpper(r)
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune(" .,-/&()'@:;*+=", r):
			return r
		}
		return ' '
	}, s)

	rs := []rune(s)
	if len(rs) > size {
		return string(rs[:size])
	}
	return s + strings.Repeat(" ", size-len(rs))
}

// Blank returns size spaces.
func Blank(size int) string {
	return strings.Repeat(" ", size)
}

// Zeros returns size zeros.
func Zeros(size int) string {
	return strings.Repeat("0", size)
}

// Date formats t as DDMMYY, or "000000" when t is zero.
func Date(t time.Time) string {
	if t.IsZero() {
		return Zeros(6)
	}
	return t.Format("020106")
}

// LongDate formats t as DDMMYYYY, or "00000000" when t is zero.
func LongDate(t time.Time) string {
	if t.IsZero() {
		return Zeros(8)
	}
	return t.Format("02012006")
}
