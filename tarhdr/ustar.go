package tarhdr

import (
	"github.com/haldis-labs/archivehdr/binfmt"
	"github.com/haldis-labs/archivehdr/entry"
	"github.com/haldis-labs/archivehdr/identity"
)

// USTAR field offsets, extending the V7 layout (§3.1, §4.2).
const (
	ustarMagicOff, ustarMagicLen     = 257, 6
	ustarVersionOff, ustarVersionLen = 263, 2
	ustarUnameOff, ustarUnameLen     = 265, 32
	ustarGnameOff, ustarGnameLen     = 297, 32
	ustarDevMajOff, ustarDevMajLen   = 329, 8
	ustarDevMinOff, ustarDevMinLen   = 337, 8
	ustarPrefixOff, ustarPrefixLen   = 345, 155
)

// DecodeOptions controls the owner-reconciliation policy of §4.2: only
// applied when Superuser is true and Resolver can resolve the decoded
// name.
type DecodeOptions struct {
	Resolver  identity.Resolver
	Superuser bool
}

// DecodeUSTAR decodes a 512-byte block as a USTAR record: first the V7
// fields (with checksum verification), then the USTAR extension fields.
// The type tag's full 0-6 range is honored; tag '7' raises ReservedType.
func DecodeUSTAR(block []byte, opts DecodeOptions) (*Header, error) {
	h, err := DecodeV7(block)
	if err != nil {
		return nil, err
	}
	h.Format = FormatUSTAR
	h.Ustar.Magic = cstr(block[ustarMagicOff : ustarMagicOff+ustarMagicLen])
	h.Ustar.Version = cstr(block[ustarVersionOff : ustarVersionOff+ustarVersionLen])
	h.Ustar.UserName = cstr(block[ustarUnameOff : ustarUnameOff+ustarUnameLen])
	h.Ustar.GroupName = cstr(block[ustarGnameOff : ustarGnameOff+ustarGnameLen])
	h.Ustar.FilePrefix = cstr(block[ustarPrefixOff : ustarPrefixOff+ustarPrefixLen])

	if h.Ustar.DeviceMajorNumber, err = binfmt.DecodeOctal(block[ustarDevMajOff : ustarDevMajOff+ustarDevMajLen]); err != nil {
		return nil, err
	}
	if h.Ustar.DeviceMinorNumber, err = binfmt.DecodeOctal(block[ustarDevMinOff : ustarDevMinOff+ustarDevMinLen]); err != nil {
		return nil, err
	}

	reconcileOwner(h, opts)
	return h, nil
}

// reconcileOwner implements §4.2's owner reconciliation policy: only when
// running as superuser and a name-service lookup is available, decoded
// userName/groupName override the numeric ids on successful resolution.
// Absent the capability, the decoded numeric ids stand.
func reconcileOwner(h *Header, opts DecodeOptions) {
	if !opts.Superuser || opts.Resolver == nil {
		return
	}
	if h.Ustar.UserName != "" {
		if uid, ok := opts.Resolver.UIDForName(h.Ustar.UserName); ok {
			h.Common.UserID = uid
		}
	}
	if h.Ustar.GroupName != "" {
		if gid, ok := opts.Resolver.GIDForName(h.Ustar.GroupName); ok {
			h.Common.GroupID = gid
		}
	}
}

// EncodeOptions controls the name-derivation quirk of §4.2's encode
// rules: when Resolver can resolve names, userName/groupName are
// re-derived from uid/gid; otherwise the literals "nobody"/"nogroup" are
// used.
type EncodeOptions struct {
	Resolver identity.Resolver
}

// EncodeUSTAR lays h out as a 512-byte USTAR record: the V7 layout plus
// magic/version/owner-name/device/prefix fields, applying the GNU-tar
// compatibility quirks of §4.2.
func EncodeUSTAR(h *Header, opts EncodeOptions) ([]byte, error) {
	if len(h.Common.FileName) > v7NameLen {
		return nil, newErr(KindPathTooLong, "USTAR fileName exceeds 100 bytes")
	}
	if len(h.Ustar.FilePrefix) > ustarPrefixLen {
		return nil, newErr(KindPathTooLong, "USTAR filePrefix exceeds 155 bytes")
	}

	userName, groupName := deriveOwnerNames(h, opts)

	block := make([]byte, recordSize)
	copy(block[v7NameOff:v7NameOff+v7NameLen], h.Common.FileName)
	putV7Numeric(block, h)
	block[v7TypeOff] = ustarTypeByte(h.Common.Type)
	copy(block[v7LinkNameOff:v7LinkNameOff+v7LinkNameLen], h.Common.LinkName)

	copy(block[ustarMagicOff:ustarMagicOff+ustarMagicLen], "ustar\x00")
	copy(block[ustarVersionOff:ustarVersionOff+ustarVersionLen], "00")
	copy(block[ustarUnameOff:ustarUnameOff+ustarUnameLen], userName)
	copy(block[ustarGnameOff:ustarGnameOff+ustarGnameLen], groupName)
	binfmt.PutOctalField(block[ustarDevMajOff:ustarDevMajOff+ustarDevMajLen], h.Ustar.DeviceMajorNumber)
	binfmt.PutOctalField(block[ustarDevMinOff:ustarDevMinOff+ustarDevMinLen], h.Ustar.DeviceMinorNumber)
	copy(block[ustarPrefixOff:ustarPrefixOff+ustarPrefixLen], h.Ustar.FilePrefix)

	stampChecksum(block)
	return block, nil
}

func deriveOwnerNames(h *Header, opts EncodeOptions) (userName, groupName string) {
	if opts.Resolver != nil {
		if name, ok := opts.Resolver.UserName(h.Common.UserID); ok {
			userName = name
		}
		if name, ok := opts.Resolver.GroupName(h.Common.GroupID); ok {
			groupName = name
		}
	}
	if userName == "" {
		userName = "nobody"
	}
	if groupName == "" {
		groupName = "nogroup"
	}
	return userName, groupName
}

// ustarTypeByte is like typeByte but keeps the full V7 mapping; USTAR
// never emits '7' (reserved is a decode-only concept).
func ustarTypeByte(t entry.Type) byte { return typeByte(t) }
