package link

import (
	"fmt"

	"github.com/spf13/afero"
)

// Symlinker creates symbolic links pointing at the absolute source path.
type Symlinker struct {
	linker afero.Linker
}

// NewSymlinker fails when fsys cannot create symlinks.
func NewSymlinker(fsys afero.Fs) (*Symlinker, error) {
	l, ok := fsys.(afero.Linker)
	if !ok {
		return nil, fmt.Errorf("filesystem %s does not support symlinks", fsys.Name())
	}
	return &Symlinker{linker: l}, nil
}

func (s *Symlinker) Name() string { return TypeSymlink }

func (s *Symlinker) Link(source, dest string) error {
	return s.linker.SymlinkIfPossible(source, dest)
}
