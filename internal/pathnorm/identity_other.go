//go:build !unix

package pathnorm

// Stat always reports an unknown identity; equality falls back to keys.
func Stat(path string) Identity {
	return Identity{}
}
