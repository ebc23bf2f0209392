package message

import (
	"io"
	"unicode"
	"unicode/utf8"
)

// DefaultSummaryLimit is the number of bytes a body summary shows before it is truncated.
const DefaultSummaryLimit = 120

// BodySummary returns a short printable excerpt of a body, for use in diagnostic messages. It reports
// false when the body is empty, cannot be rewound, or contains non-printable content. The read position
// of the body is restored. A limit <= 0 uses [DefaultSummaryLimit].
func BodySummary(b Body, limit int) (string, bool) {
	if b == nil {
		return "", false
	}
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}

	seeker, ok := b.(io.Seeker)
	if !ok {
		return "", false
	}

	size, known := b.Size()
	if known && size == 0 {
		return "", false
	}

	pos, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", false
	}
	defer seeker.Seek(pos, io.SeekStart) //nolint:errcheck

	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return "", false
	}

	buf := make([]byte, limit)
	n, err := io.ReadFull(b, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", false
	}
	if n == 0 {
		return "", false
	}

	summary := string(buf[:n])
	if known && size > int64(limit) {
		summary += " (truncated...)"
	}

	if !printable(summary) {
		return "", false
	}

	return summary, true
}

func printable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}

	for _, r := range s {
		switch {
		case r == '\n', r == '\r', r == '\t':
		case unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z):
		default:
			return false
		}
	}

	return true
}
