package tarhdr

import "github.com/haldis-labs/archivehdr/blockfile"

// IsZeroBlock reports whether block is entirely NUL bytes, the
// end-of-archive marker every real Tar reader special-cases ahead of
// checksum verification (two such blocks terminate a stream).
func IsZeroBlock(block blockfile.Block) bool {
	for _, b := range block {
		if b != 0 {
			return false
		}
	}
	return true
}

// isUstarLike reports whether block's magic field starts with "ustar",
// the discriminator between a plain V7 record and a USTAR/GNU one.
func isUstarLike(block []byte) bool {
	if len(block) < ustarMagicOff+5 {
		return false
	}
	return string(block[ustarMagicOff:ustarMagicOff+5]) == "ustar"
}

// DecodeAuto sniffs the format depth of the block at bf's cursor and
// dispatches to DecodeV7, DecodeUSTAR, or DecodeGNU accordingly. This is
// the free function the design notes (§9) describe: "a TarFormat tag
// selects decoding depth", generalized here to select which decoder runs
// rather than merely tagging the result.
func DecodeAuto(bf blockfile.BlockFile, opts DecodeOptions) (*Header, error) {
	block, err := bf.Current()
	if err != nil {
		return nil, err
	}
	if !isUstarLike(block[:]) {
		return DecodeV7(block[:])
	}
	switch block[v7TypeOff] {
	case gnuLongName, gnuLongLink:
		return DecodeGNU(bf, opts)
	default:
		return DecodeUSTAR(block[:], opts)
	}
}
