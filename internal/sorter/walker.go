package sorter

// Walker enumerates the regular files under an input root.
type Walker interface {
	// Walk returns every regular file reachable from root, skipping any
	// directory listed in exclude. A missing root fails with ErrInvalidInput;
	// unreadable subdirectories are skipped, never fatal.
	Walk(root string, exclude ...string) ([]FileHandle, error)
}
