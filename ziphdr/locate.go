package ziphdr

import (
	"io"

	"github.com/haldis-labs/archivehdr/binfmt"
)

// maxEOCDWindow is the largest possible EOCD record: the fixed 22 bytes
// plus the maximum comment length.
const maxEOCDWindow = fixedLen + maxCommentLen

// Locate scans backward from the end of an archive of the given size for
// the EOCD signature, the same tail-window approach used to scan a
// downloaded remote ZIP without reading the whole file. It returns the
// byte offset of the signature's first byte within the archive, or
// KindBadSignature if no valid record is found.
//
// A candidate is valid only when its declared comment length does not run
// past the end of the archive. This rejects a signature embedded in a
// comment when the bytes after it declare a comment length that cannot
// fit; an embedded signature whose declared length does fit is taken as
// the match.
func Locate(r io.ReaderAt, size int64) (offset int64, err error) {
	windowLen := int64(maxEOCDWindow)
	if windowLen > size {
		windowLen = size
	}
	windowStart := size - windowLen
	buf := make([]byte, windowLen)
	if _, err := r.ReadAt(buf, windowStart); err != nil && err != io.EOF {
		return 0, wrapErr(KindShortRead, "reading EOCD tail window", err)
	}

	for i := len(buf) - fieldsLen - 4; i >= 0; i-- {
		if !IsSignature(buf[i : i+4]) {
			continue
		}
		rest := binfmt.ReadBuf(buf[i+4:])
		if len(rest) < fieldsLen {
			continue
		}
		commentLenField := binfmt.ReadBuf(rest[fieldsLen-2:])
		commentLen := int(commentLenField.Uint16())
		if i+fixedLen+commentLen > len(buf) {
			continue
		}
		return windowStart + int64(i), nil
	}
	return 0, newErr(KindBadSignature, "no EOCD signature found in archive tail")
}

// LocateAndDecode is a convenience wrapper: it locates the EOCD record
// and decodes it in one call, given the archive's total size.
func LocateAndDecode(r io.ReaderAt, size int64) (*Record, int64, error) {
	offset, err := Locate(r, size)
	if err != nil {
		return nil, 0, err
	}
	// enough room for the fixed fields plus the maximum comment; trim to
	// what's actually available at the tail.
	remain := size - offset - 4
	buf := make([]byte, remain)
	if _, err := r.ReadAt(buf, offset+4); err != nil && err != io.EOF {
		return nil, 0, wrapErr(KindShortRead, "reading EOCD body", err)
	}
	rec, err := Decode(buf)
	if err != nil {
		return nil, 0, err
	}
	return rec, offset, nil
}
