// Package tlv encodes the two-digit tag, two-digit length fields used by EMV
// merchant-presented QR payloads.
package tlv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxValueLen is the largest value a two-digit decimal length can describe.
const MaxValueLen = 99

var (
	ErrFieldTooLong = errors.New("field value too long")
	ErrInvalidTag   = errors.New("tag must be two decimal digits")
)

// Field serializes a single tag/value pair. The length counts characters,
// which for the ASCII-only payload equals bytes.
func Field(tag, value string) (string, error) {
	if !validTag(tag) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	if len(value) > MaxValueLen {
		return "", fmt.Errorf("%w: tag %s has %d characters, limit %d", ErrFieldTooLong, tag, len(value), MaxValueLen)
	}

	var b strings.Builder
	b.Grow(4 + len(value))
	b.WriteString(tag)
	if len(value) < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(len(value)))
	b.WriteString(value)
	return b.String(), nil
}

// Group concatenates already serialized children, in the given order, and
// wraps the result under tag.
func Group(tag string, children ...string) (string, error) {
	return Field(tag, strings.Join(children, ""))
}

func validTag(tag string) bool {
	return len(tag) == 2 &&
		tag[0] >= '0' && tag[0] <= '9' &&
		tag[1] >= '0' && tag[1] <= '9'
}
