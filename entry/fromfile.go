package entry

import (
	"os"

	"github.com/haldis-labs/archivehdr/identity"
)

// FromFileInfo builds an Info from fi (as returned by os.Lstat), resolving
// owner names through resolver. link is the symlink target, empty for
// non-symlinks.
func FromFileInfo(path string, fi os.FileInfo, link string, resolver identity.Resolver) *Info {
	uid, gid := statOwner(fi)
	info := &Info{
		Path_:     path,
		LinkTarget: link,
		Perm:      fi.Mode().Perm(),
		UID:       uid,
		GID:       gid,
		SizeBytes: fi.Size(),
		Modified:  fi.ModTime(),
		Kind_:     kindOf(fi, link),
	}
	if name, ok := resolver.UserName(uid); ok {
		info.UserName = name
	}
	if name, ok := resolver.GroupName(gid); ok {
		info.GroupName = name
	}
	info.Major_, info.Minor_ = statDevice(fi)
	return info
}

func kindOf(fi os.FileInfo, link string) Type {
	switch {
	case fi.Mode()&os.ModeSymlink != 0 || link != "":
		return TypeSymlink
	case fi.IsDir():
		return TypeDirectory
	case fi.Mode()&os.ModeCharDevice != 0:
		return TypeCharDevice
	case fi.Mode()&os.ModeDevice != 0:
		return TypeBlockDevice
	case fi.Mode()&os.ModeNamedPipe != 0:
		return TypeFifo
	default:
		return TypeFile
	}
}
