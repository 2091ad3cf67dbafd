// Package binfmt collects the small, exhaustively-tested primitives that
// every archive header codec in this module is built from: zero-padded
// octal ASCII for Tar numeric fields, and little-endian pack/unpack for
// ZIP fields.
package binfmt

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EncodeOctal renders v as zero-padded octal ASCII occupying digits bytes,
// e.g. EncodeOctal(7, 0644) == "0000644".
func EncodeOctal(digits int, v int64) string {
	s := strconv.FormatInt(v, 8)
	if len(s) > digits {
		s = s[len(s)-digits:]
	}
	return strings.Repeat("0", digits-len(s)) + s
}

// DecodeOctal parses a Tar numeric field: trailing NULs and spaces are
// trimmed, leading spaces and NULs are trimmed too, and the remainder is
// interpreted as octal. An empty field decodes to 0.
func DecodeOctal(b []byte) (int64, error) {
	s := strings.Trim(string(b), " \x00")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 8, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "binfmt: invalid octal field %q", s)
	}
	return v, nil
}

// PutOctalField writes v into dst as octal ASCII, NUL-terminated, occupying
// exactly len(dst) bytes: len(dst)-1 octal digits followed by a NUL.
func PutOctalField(dst []byte, v int64) {
	digits := len(dst) - 1
	copy(dst, EncodeOctal(digits, v))
	dst[len(dst)-1] = 0
}
