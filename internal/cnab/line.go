package cnab

import (
	"strings"
	"unicode/utf8"

	"github.com/boddenberg/pj-collections-go/internal/domain"
)

// ComposeLine concatenates the non-empty fields in order and checks the
// result is exactly declared characters long. A mismatch is a layout bug
// and fails with *domain.ErrLineLengthMismatch.
func ComposeLine(fields []string, declared int) (string, error) {
	return composeRecord("", fields, declared)
}

func composeRecord(record string, fields []string, declared int) (string, error) {
	var b strings.Builder
	b.Grow(declared)
	for _, f := range fields {
		if f == "" {
			continue
		}
		b.WriteString(f)
	}

	line := b.String()
	if n := utf8.RuneCountInString(line); n != declared {
		return "", &domain.ErrLineLengthMismatch{Record: record, Expected: declared, Actual: n}
	}
	return line, nil
}
