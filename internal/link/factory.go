// Package link provides the Linker backends that place sorted entries in
// the output tree.
package link

import (
	"fmt"

	"github.com/spf13/afero"

	"exifsort/internal/config"
	"exifsort/internal/sorter"
)

const (
	TypeSymlink  = "symlink"
	TypeHardlink = "hardlink"
	TypeCopy     = "copy"
)

// NewLinkerFromConfig creates a Linker based on the configuration type.
func NewLinkerFromConfig(cfg config.LinkConfig, fsys afero.Fs) (sorter.Linker, error) {
	switch cfg.Type {
	case TypeSymlink, "":
		return NewSymlinker(fsys)
	case TypeHardlink:
		return NewHardLinker(fsys)
	case TypeCopy:
		return NewCopier(fsys), nil
	default:
		return nil, fmt.Errorf("unknown link type: %q", cfg.Type)
	}
}
