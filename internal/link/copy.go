package link

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Copier writes a full copy of the source at the destination. It works on
// any filesystem at the cost of duplicating storage.
type Copier struct {
	fs afero.Fs
}

func NewCopier(fsys afero.Fs) *Copier {
	return &Copier{fs: fsys}
}

func (c *Copier) Name() string { return TypeCopy }

// Link copies source to dest. An existing dest is never overwritten, and a
// partially written dest is removed.
func (c *Copier) Link(source, dest string) (err error) {
	src, err := c.fs.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", source, err)
	}

	dst, err := c.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			c.fs.Remove(dest)
		}
	}()

	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copying %s: %w", source, err)
	}
	if err = dst.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	if err = c.fs.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting times on %s: %w", dest, err)
	}
	return nil
}
