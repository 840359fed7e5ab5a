//go:build unix

package pathnorm

import (
	"os"
	"syscall"
)

// Stat returns the device and inode of path.
func Stat(path string) Identity {
	fi, err := os.Stat(path)
	if err != nil {
		return Identity{}
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return Identity{}
	}
	return NewIdentity(uint64(st.Dev), uint64(st.Ino))
}
