package binfmt

import "encoding/binary"

// ReadBuf is a cursor over a byte slice that consumes little-endian
// integers as it goes, used to walk ZIP directory records field by field.
type ReadBuf []byte

func (b *ReadBuf) Uint16() uint16 {
	v := binary.LittleEndian.Uint16(*b)
	*b = (*b)[2:]
	return v
}

func (b *ReadBuf) Uint32() uint32 {
	v := binary.LittleEndian.Uint32(*b)
	*b = (*b)[4:]
	return v
}

func (b *ReadBuf) Bytes(n int) []byte {
	v := (*b)[:n]
	*b = (*b)[n:]
	return v
}

// PutUint16 and PutUint32 append little-endian encodings to dst.
func PutUint16(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

func PutUint32(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}
