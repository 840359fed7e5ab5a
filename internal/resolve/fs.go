package resolve

import "os"

// FS answers the two filesystem questions resolution needs. Any failure to
// stat a path counts as "no".
type FS interface {
	IsDir(path string) bool
	IsFile(path string) bool
}

// OSFS is the FS backed by the real filesystem.
type OSFS struct{}

func (OSFS) IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// IsFile reports whether path exists and is not a directory.
func (OSFS) IsFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
