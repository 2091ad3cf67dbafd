// Package tarhdr implements the Tar record codecs: V7 (the base 512-byte
// record), USTAR (adds owner names, device numbers, the file-prefix
// split), and GNU (adds the L/K long-name extension protocol).
package tarhdr

import (
	"strings"
	"time"

	"github.com/haldis-labs/archivehdr/blockfile"
	"github.com/haldis-labs/archivehdr/entry"
)

// DataBlocks returns the number of 512-byte blocks a file of the given
// size occupies after its header, i.e. ceil(size/512).
func DataBlocks(size int64) int64 {
	if size <= 0 {
		return 0
	}
	return (size + blockfile.BlockSize - 1) / blockfile.BlockSize
}

// Format selects how deep a record's fields are interpreted: the
// distilled spec's V7 ⊂ USTAR ⊂ GNU inheritance chain, replaced here by
// composition plus a tag rather than a type hierarchy.
type Format int

const (
	FormatV7 Format = iota
	FormatUSTAR
	FormatGNU
)

// CommonFields is the section every Tar format shares (the first 157
// on-disk bytes plus the type tag and link name).
type CommonFields struct {
	FileName    string
	FileMode    int64
	UserID      int
	GroupID     int
	FileSize    int64
	ModTime     time.Time
	Checksum    int64
	Type        entry.Type
	LinkName    string
}

// UstarFields is the optional extension section USTAR and GNU add.
type UstarFields struct {
	Magic             string
	Version           string
	UserName          string
	GroupName         string
	DeviceMajorNumber int64
	DeviceMinorNumber int64
	FilePrefix        string
}

// Header is the logical union of V7/USTAR/GNU records: a mandatory
// CommonFields section plus an optional UstarFields extension, selected
// by Format.
type Header struct {
	Format Format
	Common CommonFields
	Ustar  UstarFields
}

// Path returns the combined logical path: FilePrefix + "/" + FileName
// when FilePrefix is non-empty, else FileName (§3.1 invariant).
func (h *Header) Path() string {
	if h.Ustar.FilePrefix == "" {
		return h.Common.FileName
	}
	return h.Ustar.FilePrefix + "/" + h.Common.FileName
}

// typeByte maps entry.Type to the on-disk Tar type tag.
func typeByte(t entry.Type) byte {
	switch t {
	case entry.TypeFile:
		return 0
	case entry.TypeHardLink:
		return '1'
	case entry.TypeSymlink:
		return '2'
	case entry.TypeCharDevice:
		return '3'
	case entry.TypeBlockDevice:
		return '4'
	case entry.TypeDirectory:
		return '5'
	case entry.TypeFifo:
		return '6'
	default:
		return 0
	}
}

// typeFromByte maps the on-disk tag back to entry.Type. ok is false for
// the reserved '7' tag.
func typeFromByte(b byte) (t entry.Type, ok bool) {
	switch b {
	case 0, ' ', '0':
		return entry.TypeFile, true
	case '1':
		return entry.TypeHardLink, true
	case '2':
		return entry.TypeSymlink, true
	case '3':
		return entry.TypeCharDevice, true
	case '4':
		return entry.TypeBlockDevice, true
	case '5':
		return entry.TypeDirectory, true
	case '6':
		return entry.TypeFifo, true
	case '7':
		return entry.TypeReserved, false
	default:
		return entry.TypeFile, true
	}
}

// ensureTrailingSlash / stripTrailingSlash enforce the directory
// trailing-slash invariant (§3.1, testable property 6).
func ensureTrailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

func stripTrailingSlash(p string) string {
	return strings.TrimSuffix(p, "/")
}

// FromEntry populates the CommonFields (and, for USTAR/GNU, the path
// split) from an entry.Provider, per §4.1's "Entry -> record" mapping.
func FromEntry(format Format, e entry.Provider) (*Header, error) {
	h := &Header{Format: format}
	path := e.Path(false)
	if e.Kind() == entry.TypeDirectory {
		path = ensureTrailingSlash(path)
	} else {
		path = stripTrailingSlash(path)
	}
	h.Common.FileMode = int64(e.Permissions().Perm())
	h.Common.UserID = e.UserID()
	h.Common.GroupID = e.GroupID()
	h.Common.FileSize = e.Size()
	h.Common.ModTime = e.ModTime()
	h.Common.Type = e.Kind()
	h.Common.LinkName = e.Link(false)

	if format == FormatV7 {
		if len(path) > 100 {
			return nil, newErr(KindPathTooLong, "V7 fileName exceeds 100 bytes: "+path)
		}
		h.Common.FileName = path
		return h, nil
	}

	prefix, name, err := splitUstarPath(path)
	if err != nil {
		return nil, err
	}
	h.Common.FileName = name
	h.Ustar.FilePrefix = prefix
	h.Ustar.Magic = "ustar"
	h.Ustar.Version = "00"
	h.Ustar.DeviceMajorNumber = int64(e.Major())
	h.Ustar.DeviceMinorNumber = int64(e.Minor())
	return h, nil
}

// splitUstarPath implements §4.2's "Path splitting on encode": split at
// the last separator when the path exceeds 100 bytes, directory portion
// to filePrefix, basename to fileName. Fails with PathTooLong if either
// half overflows its field.
func splitUstarPath(path string) (prefix, name string, err error) {
	if len(path) <= 100 {
		return "", path, nil
	}
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", "", newErr(KindPathTooLong, "no split point for path: "+path)
	}
	prefix, name = path[:idx], path[idx+1:]
	if len(name) > 100 {
		return "", "", newErr(KindPathTooLong, "fileName half exceeds 100 bytes: "+name)
	}
	if len(prefix) > 155 {
		return "", "", newErr(KindPathTooLong, "filePrefix half exceeds 155 bytes: "+prefix)
	}
	return prefix, name, nil
}
