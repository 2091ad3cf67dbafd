package tarhdr

import (
	"testing"
	"time"

	"github.com/haldis-labs/archivehdr/entry"
)

func TestV7RoundTrip(t *testing.T) {
	h := &Header{Format: FormatV7}
	h.Common.FileName = "a.txt"
	h.Common.FileMode = 0o644
	h.Common.UserID = 1000
	h.Common.GroupID = 1000
	h.Common.FileSize = 42
	h.Common.ModTime = time.Unix(1_600_000_000, 0).UTC()
	h.Common.Type = entry.TypeFile

	block, err := EncodeV7(h)
	if err != nil {
		t.Fatalf("EncodeV7: %v", err)
	}
	if len(block) != recordSize {
		t.Fatalf("block length = %d, want %d", len(block), recordSize)
	}

	got, err := DecodeV7(block)
	if err != nil {
		t.Fatalf("DecodeV7: %v", err)
	}
	if got.Common.FileName != h.Common.FileName {
		t.Errorf("FileName = %q, want %q", got.Common.FileName, h.Common.FileName)
	}
	if got.Common.FileMode != h.Common.FileMode {
		t.Errorf("FileMode = %o, want %o", got.Common.FileMode, h.Common.FileMode)
	}
	if got.Common.UserID != h.Common.UserID || got.Common.GroupID != h.Common.GroupID {
		t.Errorf("owner = %d:%d, want %d:%d", got.Common.UserID, got.Common.GroupID, h.Common.UserID, h.Common.GroupID)
	}
	if got.Common.FileSize != h.Common.FileSize {
		t.Errorf("FileSize = %d, want %d", got.Common.FileSize, h.Common.FileSize)
	}
	if got.Common.ModTime.Unix() != h.Common.ModTime.Unix() {
		t.Errorf("ModTime = %v, want %v", got.Common.ModTime, h.Common.ModTime)
	}
	if got.Common.Type != h.Common.Type {
		t.Errorf("Type = %v, want %v", got.Common.Type, h.Common.Type)
	}
}

func TestV7ChecksumStampedCorrectly(t *testing.T) {
	h := &Header{Format: FormatV7}
	h.Common.FileName = "x"
	h.Common.Type = entry.TypeFile
	h.Common.ModTime = time.Unix(0, 0)

	block, err := EncodeV7(h)
	if err != nil {
		t.Fatal(err)
	}

	decodedChecksum, err := decodeOctalInt(block[checksumFieldOffset : checksumFieldOffset+checksumFieldLen])
	if err != nil {
		t.Fatal(err)
	}
	if err := verifyChecksum(block, int64(decodedChecksum)); err != nil {
		t.Fatalf("verifyChecksum: %v", err)
	}
}

func TestV7ChecksumCorruption(t *testing.T) {
	h := &Header{Format: FormatV7}
	h.Common.FileName = "corrupt.txt"
	h.Common.FileSize = 10
	h.Common.ModTime = time.Unix(0, 0)
	h.Common.Type = entry.TypeFile

	block, err := EncodeV7(h)
	if err != nil {
		t.Fatal(err)
	}

	// Flip a data byte outside the checksum field.
	block[0] ^= 0xff

	if _, err := DecodeV7(block); err == nil {
		t.Fatal("expected ChecksumMismatch, got nil")
	} else if kind, ok := KindOf(err); !ok || kind != KindChecksumMismatch {
		t.Fatalf("expected KindChecksumMismatch, got %v (ok=%v)", kind, ok)
	}
}

func TestV7PathTooLong(t *testing.T) {
	h := &Header{Format: FormatV7}
	h.Common.FileName = string(make([]byte, 101))
	h.Common.Type = entry.TypeFile

	if _, err := EncodeV7(h); err == nil {
		t.Fatal("expected PathTooLong error")
	} else if kind, ok := KindOf(err); !ok || kind != KindPathTooLong {
		t.Fatalf("expected KindPathTooLong, got %v (ok=%v)", kind, ok)
	}
}

func TestV7ReservedType(t *testing.T) {
	block := make([]byte, recordSize)
	copy(block[v7NameOff:], "reserved")
	block[v7TypeOff] = '7'
	stampChecksum(block)

	if _, err := DecodeV7(block); err == nil {
		t.Fatal("expected ReservedType error")
	} else if kind, ok := KindOf(err); !ok || kind != KindReservedType {
		t.Fatalf("expected KindReservedType, got %v (ok=%v)", kind, ok)
	}
}

func TestFromEntryDirectoryTrailingSlash(t *testing.T) {
	e := &entry.Info{Path_: "some/dir", Kind_: entry.TypeDirectory}
	h, err := FromEntry(FormatV7, e)
	if err != nil {
		t.Fatal(err)
	}
	if h.Common.FileName != "some/dir/" {
		t.Errorf("FileName = %q, want trailing slash", h.Common.FileName)
	}

	f := &entry.Info{Path_: "some/file.txt", Kind_: entry.TypeFile}
	h2, err := FromEntry(FormatV7, f)
	if err != nil {
		t.Fatal(err)
	}
	if h2.Common.FileName != "some/file.txt" {
		t.Errorf("FileName = %q, want no trailing slash", h2.Common.FileName)
	}
}
