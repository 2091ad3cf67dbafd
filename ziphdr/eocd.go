// Package ziphdr implements the ZIP end-of-central-directory record codec
// (§3.2, §4.4). Only the EOCD record is in scope; local/central directory
// file headers, PAX, ZIP64 and encryption are explicitly out of scope.
package ziphdr

import (
	"github.com/haldis-labs/archivehdr/binfmt"
)

// Signature and record widths for the ZIP end-of-central-directory record.
const (
	Signature    uint32 = 0x06054b50
	fixedLen            = 22 // signature + 7 fixed fields, before the comment
	fieldsLen           = 18 // fixed fields only, after the 4-byte signature
	maxCommentLen        = 0xffff
)

// Record is the ZIP end-of-central-directory record (§3.2). The values the
// write-time policy derives cannot be set directly from outside, per
// §4.4's "not independently writable from outside" rule: diskNumber,
// centralDirectoryDisk and totalCentralDirectoryEntriesOnDisk are
// unexported fields set by SetTotalEntries (or by Decode), and
// commentLength is not stored at all; CommentLength returns len(comment).
type Record struct {
	diskNumber                         uint16
	centralDirectoryDisk               uint16
	totalCentralDirectoryEntriesOnDisk uint16
	totalCentralDirectoryEntries       uint16
	centralDirectorySize               uint32
	centralDirectoryStart              uint32
	comment                            []byte
}

// New builds a Record for a single-disk archive with the given entry
// count, central directory size, and start offset.
func New(entries uint16, size, start uint32) *Record {
	r := &Record{centralDirectorySize: size, centralDirectoryStart: start}
	r.SetTotalEntries(entries)
	return r
}

func (r *Record) DiskNumber() uint16                         { return r.diskNumber }
func (r *Record) CentralDirectoryDisk() uint16                { return r.centralDirectoryDisk }
func (r *Record) TotalCentralDirectoryEntriesOnDisk() uint16 { return r.totalCentralDirectoryEntriesOnDisk }
func (r *Record) TotalCentralDirectoryEntries() uint16       { return r.totalCentralDirectoryEntries }
func (r *Record) CentralDirectorySize() uint32                { return r.centralDirectorySize }
func (r *Record) CentralDirectoryStart() uint32               { return r.centralDirectoryStart }
func (r *Record) CommentLength() uint16                       { return uint16(len(r.comment)) }
func (r *Record) Comment() string                              { return string(r.comment) }

// SetTotalEntries implements §4.4's write-time policy: setting total
// entries also forces diskNumber = centralDirectoryDisk = 0 and
// synchronizes totalCentralDirectoryEntriesOnDisk to match, since this
// codec targets single-disk archives only.
func (r *Record) SetTotalEntries(n uint16) {
	r.totalCentralDirectoryEntries = n
	r.totalCentralDirectoryEntriesOnDisk = n
	r.diskNumber = 0
	r.centralDirectoryDisk = 0
}

// SetCentralDirectorySize sets the central directory's byte size.
func (r *Record) SetCentralDirectorySize(n uint32) { r.centralDirectorySize = n }

// SetCentralDirectoryStart sets the central directory's start offset.
func (r *Record) SetCentralDirectoryStart(n uint32) { r.centralDirectoryStart = n }

// SetComment sets the trailing comment and recomputes CommentLength.
func (r *Record) SetComment(s string) error {
	if len(s) > maxCommentLen {
		return newErr(KindPropertyReadOnly, "comment exceeds 65535 bytes")
	}
	r.comment = []byte(s)
	return nil
}

// IsSignature reports whether the 4 bytes at the start of b are the
// little-endian EOCD signature (§4.4 "Signature detection").
func IsSignature(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	buf := binfmt.ReadBuf(b)
	return buf.Uint32() == Signature
}

// Decode parses an EOCD record from b, which must begin immediately past
// the 4-byte signature (already consumed by the caller, e.g. via Locate).
// It reads the 18 fixed bytes, then exactly CommentLength additional
// bytes as the comment (§4.4 "Decode").
func Decode(b []byte) (*Record, error) {
	if len(b) < fieldsLen {
		return nil, wrapErr(KindShortRead, "EOCD fixed fields", shortRead(len(b), fieldsLen))
	}
	buf := binfmt.ReadBuf(b)
	r := &Record{
		diskNumber:                         buf.Uint16(),
		centralDirectoryDisk:               buf.Uint16(),
		totalCentralDirectoryEntriesOnDisk: buf.Uint16(),
		totalCentralDirectoryEntries:       buf.Uint16(),
		centralDirectorySize:               buf.Uint32(),
		centralDirectoryStart:              buf.Uint32(),
	}
	commentLen := int(buf.Uint16())
	if len(buf) < commentLen {
		return nil, wrapErr(KindShortRead, "EOCD comment", shortRead(len(buf), commentLen))
	}
	r.comment = append([]byte(nil), buf.Bytes(commentLen)...)
	return r, nil
}

// Encode emits the 22-byte fixed prefix (signature + seven fields)
// followed by the comment bytes (§4.4 "Encode").
func Encode(r *Record) []byte {
	out := make([]byte, 0, fixedLen+len(r.comment))
	out = binfmt.PutUint32(out, Signature)
	out = binfmt.PutUint16(out, r.diskNumber)
	out = binfmt.PutUint16(out, r.centralDirectoryDisk)
	out = binfmt.PutUint16(out, r.totalCentralDirectoryEntriesOnDisk)
	out = binfmt.PutUint16(out, r.totalCentralDirectoryEntries)
	out = binfmt.PutUint32(out, r.centralDirectorySize)
	out = binfmt.PutUint32(out, r.centralDirectoryStart)
	out = binfmt.PutUint16(out, uint16(len(r.comment)))
	out = append(out, r.comment...)
	return out
}

type shortReadError struct{ have, want int }

func (e shortReadError) Error() string {
	return "have insufficient bytes for EOCD field"
}

func shortRead(have, want int) error { return shortReadError{have, want} }
