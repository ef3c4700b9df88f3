package link

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/spf13/afero"

	"exifsort/internal/config"
)

func writeSource(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "IMG_0001.jpg")
	if err := os.WriteFile(path, []byte("jpeg bytes"), 0o640); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	return path
}

func TestNewLinkerFromConfig(t *testing.T) {
	osfs := afero.NewOsFs()
	tests := []struct {
		typ      string
		fsys     afero.Fs
		wantName string
		wantErr  bool
	}{
		{"", osfs, TypeSymlink, false},
		{"symlink", osfs, TypeSymlink, false},
		{"hardlink", osfs, TypeHardlink, false},
		{"copy", osfs, TypeCopy, false},
		{"copy", afero.NewMemMapFs(), TypeCopy, false},
		{"symlink", afero.NewMemMapFs(), "", true},
		{"hardlink", afero.NewMemMapFs(), "", true},
		{"reflink", osfs, "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.typ+"/"+tt.fsys.Name(), func(t *testing.T) {
			l, err := NewLinkerFromConfig(config.LinkConfig{Type: tt.typ}, tt.fsys)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLinkerFromConfig() error = %v", err)
			}
			if l.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", l.Name(), tt.wantName)
			}
		})
	}
}

func TestLinkers_OS(t *testing.T) {
	for _, typ := range []string{TypeSymlink, TypeHardlink, TypeCopy} {
		typ := typ
		t.Run(typ, func(t *testing.T) {
			dir := t.TempDir()
			src := writeSource(t, dir)
			dest := filepath.Join(dir, "out.jpg")

			l, err := NewLinkerFromConfig(config.LinkConfig{Type: typ}, afero.NewOsFs())
			if err != nil {
				t.Fatalf("NewLinkerFromConfig() error = %v", err)
			}

			if err := l.Link(src, dest); err != nil {
				t.Fatalf("Link() error = %v", err)
			}
			got, err := os.ReadFile(dest)
			if err != nil {
				t.Fatalf("reading dest: %v", err)
			}
			if string(got) != "jpeg bytes" {
				t.Errorf("dest content = %q", got)
			}

			err = l.Link(src, dest)
			if !errors.Is(err, fs.ErrExist) {
				t.Errorf("second Link() error = %v, want ErrExist", err)
			}
		})
	}
}

func TestSymlinker_TargetIsSource(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)
	dest := filepath.Join(dir, "out.jpg")

	l, err := NewSymlinker(afero.NewOsFs())
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Link(src, dest); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	target, err := os.Readlink(dest)
	if err != nil {
		t.Fatalf("Readlink() error = %v", err)
	}
	if target != src {
		t.Errorf("target = %q, want %q", target, src)
	}
}

func TestHardLinker_CrossDevice(t *testing.T) {
	if !isEXDEV(syscall.EXDEV) {
		t.Skip("platform does not report EXDEV")
	}
	orig := linkFunc
	t.Cleanup(func() { linkFunc = orig })
	linkFunc = func(oldname, newname string) error {
		return &os.LinkError{Op: "link", Old: oldname, New: newname, Err: syscall.EXDEV}
	}

	l, err := NewHardLinker(afero.NewOsFs())
	if err != nil {
		t.Fatal(err)
	}
	err = l.Link("/a/x.jpg", "/b/x.jpg")

	var cde *CrossDeviceError
	if !errors.As(err, &cde) {
		t.Fatalf("Link() error = %v, want *CrossDeviceError", err)
	}
	if cde.Source != "/a/x.jpg" || cde.Dest != "/b/x.jpg" {
		t.Errorf("CrossDeviceError = %+v", cde)
	}
}

func TestCopier(t *testing.T) {
	t.Run("copies content and keeps mod time", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "/in/a.jpg", []byte("pixels"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := fsys.MkdirAll("/out", 0o755); err != nil {
			t.Fatal(err)
		}
		srcInfo, _ := fsys.Stat("/in/a.jpg")

		c := NewCopier(fsys)
		if err := c.Link("/in/a.jpg", "/out/a.jpg"); err != nil {
			t.Fatalf("Link() error = %v", err)
		}
		got, _ := afero.ReadFile(fsys, "/out/a.jpg")
		if string(got) != "pixels" {
			t.Errorf("content = %q, want pixels", got)
		}
		info, _ := fsys.Stat("/out/a.jpg")
		if !info.ModTime().Equal(srcInfo.ModTime()) {
			t.Errorf("ModTime = %v, want %v", info.ModTime(), srcInfo.ModTime())
		}
	})

	t.Run("never overwrites", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		afero.WriteFile(fsys, "/in/a.jpg", []byte("new"), 0o644)
		afero.WriteFile(fsys, "/out/a.jpg", []byte("old"), 0o644)

		err := NewCopier(fsys).Link("/in/a.jpg", "/out/a.jpg")
		if !errors.Is(err, fs.ErrExist) {
			t.Fatalf("Link() error = %v, want ErrExist", err)
		}
		got, _ := afero.ReadFile(fsys, "/out/a.jpg")
		if string(got) != "old" {
			t.Errorf("dest overwritten: %q", got)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		err := NewCopier(fsys).Link("/in/gone.jpg", "/out/gone.jpg")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("Link() error = %v, want ErrNotExist", err)
		}
		if exists, _ := afero.Exists(fsys, "/out/gone.jpg"); exists {
			t.Error("dest created for missing source")
		}
	})
}
