package binfmt

import "testing"

func TestReadBufRoundTrip(t *testing.T) {
	var buf []byte
	buf = PutUint16(buf, 0x1234)
	buf = PutUint32(buf, 0xdeadbeef)
	buf = append(buf, "hello"...)

	rb := ReadBuf(buf)
	if got := rb.Uint16(); got != 0x1234 {
		t.Fatalf("Uint16() = %#x, want 0x1234", got)
	}
	if got := rb.Uint32(); got != 0xdeadbeef {
		t.Fatalf("Uint32() = %#x, want 0xdeadbeef", got)
	}
	if got := string(rb.Bytes(5)); got != "hello" {
		t.Fatalf("Bytes(5) = %q, want %q", got, "hello")
	}
}
