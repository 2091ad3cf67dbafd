package tarhdr

import (
	"github.com/haldis-labs/archivehdr/blockfile"
)

// gnuLongName and gnuLongLink are the GNU extension type tags: 'L' carries
// a long file name in the following blocks' payload, 'K' a long link
// name (§4.3, GLOSSARY "GNU extension (L/K)").
const (
	gnuLongName = 'L'
	gnuLongLink = 'K'
)

// DecodeGNU runs the extension state machine of §4.3 over bf, starting at
// its current block, until a terminating (non-L/K) record is consumed.
// The returned Header is the terminator record with fileName/linkName
// overridden by any pending long-name payloads.
func DecodeGNU(bf blockfile.BlockFile, opts DecodeOptions) (*Header, error) {
	var pendingName, pendingLink string
	var haveName, haveLink bool

	block, err := bf.Current()
	if err != nil {
		return nil, err
	}

	for {
		h, err := DecodeUSTAR(block[:], opts)
		if err != nil {
			return nil, err
		}

		tag := block[v7TypeOff]
		switch {
		case tag == gnuLongName:
			payload, err := readGNUPayload(bf, h.Common.FileSize)
			if err != nil {
				return nil, err
			}
			pendingName = cstrBytes(payload)
			haveName = true
			block, err = bf.Next()
			if err != nil {
				return nil, err
			}
			continue
		case tag == gnuLongLink:
			payload, err := readGNUPayload(bf, h.Common.FileSize)
			if err != nil {
				return nil, err
			}
			pendingLink = cstrBytes(payload)
			haveLink = true
			block, err = bf.Next()
			if err != nil {
				return nil, err
			}
			continue
		default:
			// terminator: a real record ('0'..'9') or an unknown
			// extension tag, either way decoding stops here (§4.3).
			h.Format = FormatGNU
			if haveName {
				h.Common.FileName = pendingName
				h.Ustar.FilePrefix = ""
			}
			if haveLink {
				h.Common.LinkName = pendingLink
			}
			return h, nil
		}
	}
}

// readGNUPayload consumes ceil(n/512) blocks from bf and returns the
// first n bytes of their concatenation, per §4.3's read_payload. This
// module resolves the reference's "one additional block" open question
// (§9, §4.3.1) by never advancing beyond the blocks the payload itself
// occupies: the caller's subsequent bf.Next() (see the loop above) is
// what positions the cursor at the next logical record, exactly once,
// regardless of whether fileSize is block-aligned.
func readGNUPayload(bf blockfile.BlockFile, n int64) ([]byte, error) {
	if n < 0 {
		return nil, newErr(KindShortRead, "negative GNU payload size")
	}
	blocks := (n + blockfile.BlockSize - 1) / blockfile.BlockSize
	if blocks == 0 {
		return nil, nil
	}
	buf := make([]byte, 0, blocks*blockfile.BlockSize)
	for i := int64(0); i < blocks; i++ {
		b, err := bf.Next()
		if err != nil {
			return nil, err
		}
		buf = append(buf, b[:]...)
	}
	if int64(len(buf)) < n {
		return nil, newErr(KindShortRead, "GNU payload truncated")
	}
	return buf[:n], nil
}

func cstrBytes(b []byte) string {
	if i := indexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// EncodeGNU emits h through the GNU codec. When h's logical path or link
// target exceeds the USTAR 100-byte fileName limit, this emits the L/K
// long-name extension records ahead of the terminating USTAR record, per
// §4.3.1 (added by this expansion for symmetric round-tripping with
// DecodeGNU).
func EncodeGNU(h *Header, opts EncodeOptions) ([]byte, error) {
	var out []byte

	path := h.Path()
	if len(path) > 100 {
		ext, err := encodeGNULongRecord(gnuLongName, path)
		if err != nil {
			return nil, err
		}
		out = append(out, ext...)
	}
	if len(h.Common.LinkName) > 100 {
		ext, err := encodeGNULongRecord(gnuLongLink, h.Common.LinkName)
		if err != nil {
			return nil, err
		}
		out = append(out, ext...)
	}

	term := *h
	term.Ustar.FilePrefix = ""
	term.Common.FileName = path
	if len(term.Common.FileName) > 100 {
		term.Common.FileName = term.Common.FileName[:100]
	}
	if len(term.Common.LinkName) > 100 {
		term.Common.LinkName = term.Common.LinkName[:100]
	}
	block, err := EncodeUSTAR(&term, opts)
	if err != nil {
		return nil, err
	}
	out = append(out, block...)
	return out, nil
}

// encodeGNULongRecord builds the L/K extension header plus its
// NUL-terminated, block-padded payload (§4.3.1).
func encodeGNULongRecord(tag byte, value string) ([]byte, error) {
	payload := append([]byte(value), 0)
	padded := padToBlock(payload)

	h := &Header{Format: FormatGNU}
	h.Common.FileName = "././@LongLink"
	h.Common.FileSize = int64(len(payload))
	h.Common.ModTime = zeroTime
	h.Common.Type = 0
	block := make([]byte, recordSize)
	copy(block[v7NameOff:v7NameOff+v7NameLen], h.Common.FileName)
	block[v7TypeOff] = tag
	putV7Numeric(block, h)
	stampChecksum(block)

	out := make([]byte, 0, len(block)+len(padded))
	out = append(out, block...)
	out = append(out, padded...)
	return out, nil
}

func padToBlock(b []byte) []byte {
	rem := len(b) % blockfile.BlockSize
	if rem == 0 {
		return b
	}
	return append(b, make([]byte, blockfile.BlockSize-rem)...)
}
