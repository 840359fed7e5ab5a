package pathnorm

// Identity is an opaque, comparable token naming a directory on disk. The zero
// value means the identity is unknown.
type Identity struct {
	dev   uint64
	ino   uint64
	valid bool
}

// Valid reports whether the identity was actually looked up.
func (id Identity) Valid() bool { return id.valid && id.ino != 0 }

// IdentityFunc resolves a path to its filesystem identity. A missing path, or
// a platform without inode numbers, yields the zero Identity.
type IdentityFunc func(path string) Identity

// NewIdentity builds an Identity from a device and inode pair.
func NewIdentity(dev, ino uint64) Identity {
	return Identity{dev: dev, ino: ino, valid: true}
}
