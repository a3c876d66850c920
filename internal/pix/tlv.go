// Package pix encodes PIX "BR Code" payment strings: EMV-style
// tag-length-value fields closed by a CRC16 trailer.
package pix

import (
	"fmt"
	"unicode/utf8"

	"github.com/boddenberg/pj-collections-go/internal/domain"
)

// MaxFieldLength is the largest value a two-digit length prefix can describe.
const MaxFieldLength = 99

// Encode returns tag + two-digit length + value. The length is the rune
// count of value. Values over MaxFieldLength fail with
// *domain.ErrFieldLengthExceeded; nothing is ever truncated.
func Encode(tag, value string) (string, error) {
	n := utf8.RuneCountInString(value)
	if n > MaxFieldLength {
		return "", &domain.ErrFieldLengthExceeded{Tag: tag, Length: n, Max: MaxFieldLength}
	}
	return fmt.Sprintf("%s%02d%s", tag, n, value), nil
}
