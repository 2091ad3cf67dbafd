//go:build !windows

package entry

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func statOwner(fi os.FileInfo) (uid, gid int) {
	s, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0
	}
	return int(s.Uid), int(s.Gid)
}

func statDevice(fi os.FileInfo) (major, minor int) {
	s, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0
	}
	if fi.Mode()&(os.ModeDevice|os.ModeCharDevice) == 0 {
		return 0, 0
	}
	return int(unix.Major(uint64(s.Rdev))), int(unix.Minor(uint64(s.Rdev)))
}
