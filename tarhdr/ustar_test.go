package tarhdr

import (
	"strings"
	"testing"
	"time"

	"github.com/haldis-labs/archivehdr/entry"
	"github.com/haldis-labs/archivehdr/identity"
)

func encodeDecodeUSTAR(t *testing.T, h *Header) *Header {
	t.Helper()
	block, err := EncodeUSTAR(h, EncodeOptions{})
	if err != nil {
		t.Fatalf("EncodeUSTAR: %v", err)
	}
	got, err := DecodeUSTAR(block, DecodeOptions{Resolver: identity.None})
	if err != nil {
		t.Fatalf("DecodeUSTAR: %v", err)
	}
	return got
}

func TestUSTARShortPathNoPrefix(t *testing.T) {
	e := &entry.Info{Path_: "a.txt", Kind_: entry.TypeFile, Modified: time.Unix(0, 0)}
	h, err := FromEntry(FormatUSTAR, e)
	if err != nil {
		t.Fatal(err)
	}
	if h.Ustar.FilePrefix != "" {
		t.Errorf("FilePrefix = %q, want empty", h.Ustar.FilePrefix)
	}
	if h.Common.FileName != "a.txt" {
		t.Errorf("FileName = %q, want %q", h.Common.FileName, "a.txt")
	}

	got := encodeDecodeUSTAR(t, h)
	if got.Path() != "a.txt" {
		t.Errorf("Path() = %q, want %q", got.Path(), "a.txt")
	}
}

func TestUSTARLongPathSplit(t *testing.T) {
	path := strings.Repeat("a/", 60) + "b.txt" // 125 bytes
	e := &entry.Info{Path_: path, Kind_: entry.TypeFile, Modified: time.Unix(0, 0)}

	h, err := FromEntry(FormatUSTAR, e)
	if err != nil {
		t.Fatal(err)
	}
	if h.Common.FileName != "b.txt" {
		t.Errorf("FileName = %q, want %q", h.Common.FileName, "b.txt")
	}
	wantPrefix := strings.TrimSuffix(strings.Repeat("a/", 60), "/")
	if h.Ustar.FilePrefix != wantPrefix {
		t.Errorf("FilePrefix = %q, want %q", h.Ustar.FilePrefix, wantPrefix)
	}

	got := encodeDecodeUSTAR(t, h)
	if got.Path() != path {
		t.Errorf("Path() = %q, want %q", got.Path(), path)
	}
}

func TestUSTARPathTooLongRejected(t *testing.T) {
	longBasename := strings.Repeat("x", 200)
	e := &entry.Info{Path_: "dir/" + longBasename, Kind_: entry.TypeFile, Modified: time.Unix(0, 0)}

	_, err := FromEntry(FormatUSTAR, e)
	if err == nil {
		t.Fatal("expected PathTooLong error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindPathTooLong {
		t.Fatalf("expected KindPathTooLong, got %v (ok=%v)", kind, ok)
	}
}

func TestUSTARReservedType(t *testing.T) {
	h := &Header{Format: FormatUSTAR}
	h.Common.FileName = "reserved"
	h.Common.ModTime = time.Unix(0, 0)
	block, err := EncodeUSTAR(h, EncodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	block[v7TypeOff] = '7'
	stampChecksum(block)

	if _, err := DecodeUSTAR(block, DecodeOptions{}); err == nil {
		t.Fatal("expected ReservedType error")
	} else if kind, ok := KindOf(err); !ok || kind != KindReservedType {
		t.Fatalf("expected KindReservedType, got %v (ok=%v)", kind, ok)
	}
}

func TestUSTAROwnerReconciliation(t *testing.T) {
	resolver := identity.NewStatic(map[int]string{42: "alice"}, map[int]string{7: "wheel"})

	h := &Header{Format: FormatUSTAR}
	h.Common.FileName = "f"
	h.Common.ModTime = time.Unix(0, 0)
	h.Common.UserID = 999 // wrong on purpose; archive was made on another host
	h.Common.GroupID = 999
	h.Ustar.UserName = "alice"
	h.Ustar.GroupName = "wheel"

	block, err := EncodeUSTAR(h, EncodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// EncodeUSTAR overwrites uname/gname via deriveOwnerNames since no
	// resolver is given; write our chosen names back in directly to
	// simulate an archive produced elsewhere.
	copy(block[ustarUnameOff:ustarUnameOff+ustarUnameLen], make([]byte, ustarUnameLen))
	copy(block[ustarUnameOff:ustarUnameOff+ustarUnameLen], "alice")
	copy(block[ustarGnameOff:ustarGnameOff+ustarGnameLen], make([]byte, ustarGnameLen))
	copy(block[ustarGnameOff:ustarGnameOff+ustarGnameLen], "wheel")
	stampChecksum(block)

	got, err := DecodeUSTAR(block, DecodeOptions{Resolver: resolver, Superuser: true})
	if err != nil {
		t.Fatal(err)
	}
	if got.Common.UserID != 42 {
		t.Errorf("UserID = %d, want 42 (resolved from name)", got.Common.UserID)
	}
	if got.Common.GroupID != 7 {
		t.Errorf("GroupID = %d, want 7 (resolved from name)", got.Common.GroupID)
	}

	// Without superuser, the numeric ids stand as decoded.
	got2, err := DecodeUSTAR(block, DecodeOptions{Resolver: resolver, Superuser: false})
	if err != nil {
		t.Fatal(err)
	}
	if got2.Common.UserID != 999 {
		t.Errorf("UserID = %d, want 999 (unresolved without superuser)", got2.Common.UserID)
	}
}

func TestUSTAREncodeFallbackNames(t *testing.T) {
	h := &Header{Format: FormatUSTAR}
	h.Common.FileName = "f"
	h.Common.ModTime = time.Unix(0, 0)
	h.Common.UserID = 1234
	h.Common.GroupID = 1234

	block, err := EncodeUSTAR(h, EncodeOptions{Resolver: identity.None})
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeUSTAR(block, DecodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Ustar.UserName != "nobody" {
		t.Errorf("UserName = %q, want %q", got.Ustar.UserName, "nobody")
	}
	if got.Ustar.GroupName != "nogroup" {
		t.Errorf("GroupName = %q, want %q", got.Ustar.GroupName, "nogroup")
	}
}
