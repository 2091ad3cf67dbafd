package tarhdr

import (
	"fmt"
	"time"

	"github.com/haldis-labs/archivehdr/binfmt"
)

// V7 field offsets and widths, from §3.1's field table. The nine V7 fields
// occupy the first 257 bytes (name through link name); V7 leaves the
// remaining 255 bytes unused, and USTAR places its extension fields there.
const (
	v7NameOff, v7NameLen         = 0, 100
	v7ModeOff, v7ModeLen         = 100, 8
	v7UIDOff, v7UIDLen           = 108, 8
	v7GIDOff, v7GIDLen           = 116, 8
	v7SizeOff, v7SizeLen         = 124, 12
	v7MTimeOff, v7MTimeLen       = 136, 12
	// checksum lives at 148..156, see checksum.go
	v7TypeOff                    = 156
	v7LinkNameOff, v7LinkNameLen = 157, 100

	recordSize = 512
)

// DecodeV7 decodes a 512-byte block as a V7 record and verifies its
// checksum (§4.1). block must be exactly 512 bytes.
func DecodeV7(block []byte) (*Header, error) {
	if len(block) != recordSize {
		return nil, wrapErr(KindShortRead, "V7 record must be 512 bytes", errShortBlock(len(block)))
	}
	decodedChecksum, err := binfmt.DecodeOctal(block[checksumFieldOffset : checksumFieldOffset+checksumFieldLen])
	if err != nil {
		return nil, err
	}
	if err := verifyChecksum(block, decodedChecksum); err != nil {
		return nil, err
	}

	h := &Header{Format: FormatV7}
	h.Common.FileName = cstr(block[v7NameOff : v7NameOff+v7NameLen])
	h.Common.Checksum = decodedChecksum
	h.Common.LinkName = cstr(block[v7LinkNameOff : v7LinkNameOff+v7LinkNameLen])

	if h.Common.FileMode, err = binfmt.DecodeOctal(block[v7ModeOff : v7ModeOff+v7ModeLen]); err != nil {
		return nil, err
	}
	if h.Common.UserID, err = decodeOctalInt(block[v7UIDOff : v7UIDOff+v7UIDLen]); err != nil {
		return nil, err
	}
	if h.Common.GroupID, err = decodeOctalInt(block[v7GIDOff : v7GIDOff+v7GIDLen]); err != nil {
		return nil, err
	}
	if h.Common.FileSize, err = binfmt.DecodeOctal(block[v7SizeOff : v7SizeOff+v7SizeLen]); err != nil {
		return nil, err
	}
	var mtime int64
	if mtime, err = binfmt.DecodeOctal(block[v7MTimeOff : v7MTimeOff+v7MTimeLen]); err != nil {
		return nil, err
	}
	h.Common.ModTime = time.Unix(mtime, 0).UTC()

	tag := block[v7TypeOff]
	typ, ok := typeFromByte(tag)
	if !ok {
		return nil, newErr(KindReservedType, "V7 type tag '7' is reserved")
	}
	h.Common.Type = typ
	return h, nil
}

// EncodeV7 lays h out as a 512-byte V7 record and stamps the checksum
// field per §4.1's encode rule.
func EncodeV7(h *Header) ([]byte, error) {
	if len(h.Common.FileName) > v7NameLen {
		return nil, newErr(KindPathTooLong, "V7 fileName exceeds 100 bytes")
	}
	if len(h.Common.LinkName) > v7LinkNameLen {
		return nil, newErr(KindPathTooLong, "V7 linkName exceeds 100 bytes")
	}
	block := make([]byte, recordSize)
	copy(block[v7NameOff:v7NameOff+v7NameLen], h.Common.FileName)
	putV7Numeric(block, h)
	block[v7TypeOff] = typeByte(h.Common.Type)
	copy(block[v7LinkNameOff:v7LinkNameOff+v7LinkNameLen], h.Common.LinkName)

	stampChecksum(block)
	return block, nil
}

// putV7Numeric writes the shared mode/uid/gid/size/mtime octal fields
// common to V7, USTAR, and GNU extension records.
func putV7Numeric(block []byte, h *Header) {
	binfmt.PutOctalField(block[v7ModeOff:v7ModeOff+v7ModeLen], h.Common.FileMode)
	binfmt.PutOctalField(block[v7UIDOff:v7UIDOff+v7UIDLen], int64(h.Common.UserID))
	binfmt.PutOctalField(block[v7GIDOff:v7GIDOff+v7GIDLen], int64(h.Common.GroupID))
	binfmt.PutOctalField(block[v7SizeOff:v7SizeOff+v7SizeLen], h.Common.FileSize)
	binfmt.PutOctalField(block[v7MTimeOff:v7MTimeOff+v7MTimeLen], h.Common.ModTime.Unix())
}

// zeroTime is used for the synthetic GNU long-name extension header's
// modification time field, which readers ignore.
var zeroTime = time.Unix(0, 0).UTC()

// cstr trims a NUL-terminated or NUL-padded ASCII field to its string
// content, per the "NUL-terminated or NUL-padded ASCII" encoding note in
// §3.1's field table.
func cstr(b []byte) string {
	if i := indexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func decodeOctalInt(b []byte) (int, error) {
	v, err := binfmt.DecodeOctal(b)
	return int(v), err
}

type shortBlockError int

func (e shortBlockError) Error() string {
	return fmt.Sprintf("want 512 bytes, have %d", int(e))
}

func errShortBlock(n int) error { return shortBlockError(n) }
