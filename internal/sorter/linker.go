package sorter

// Linker creates a filesystem entry at dest that resolves to the content of
// source. Backends decide whether that is a symlink, a hard link or a copy.
type Linker interface {
	// Link creates dest. If dest is already occupied the returned error
	// satisfies errors.Is(err, fs.ErrExist).
	Link(source, dest string) error

	// Name identifies the backend in logs and summaries.
	Name() string
}
