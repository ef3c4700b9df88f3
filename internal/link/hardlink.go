package link

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// linkFunc is swapped in tests to simulate cross-device failures.
var linkFunc = os.Link

// CrossDeviceError reports a hard link that would span two filesystems.
// Input and output must share a filesystem for the hardlink backend.
type CrossDeviceError struct {
	Source string
	Dest   string
	Err    error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cannot hard link across filesystems: %q -> %q (use link type symlink or copy): %v", e.Source, e.Dest, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// HardLinker creates hard links on the host filesystem.
type HardLinker struct{}

// NewHardLinker requires the OS filesystem; hard links have no meaning on
// other afero backends.
func NewHardLinker(fsys afero.Fs) (*HardLinker, error) {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return nil, fmt.Errorf("hard links need the OS filesystem, got %s", fsys.Name())
	}
	return &HardLinker{}, nil
}

func (h *HardLinker) Name() string { return TypeHardlink }

func (h *HardLinker) Link(source, dest string) error {
	if err := linkFunc(source, dest); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Source: source, Dest: dest, Err: err}
		}
		return err
	}
	return nil
}
