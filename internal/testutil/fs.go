package testutil

import (
	"os"
	"sync"

	"github.com/spf13/afero"
)

// FailingFs wraps an afero.Fs and injects errors for chosen paths.
type FailingFs struct {
	afero.Fs
	mu       sync.Mutex
	open     map[string]error
	mkdir    map[string]error
	listings map[string]error
}

func NewFailingFs(base afero.Fs) *FailingFs {
	return &FailingFs{
		Fs:       base,
		open:     make(map[string]error),
		mkdir:    make(map[string]error),
		listings: make(map[string]error),
	}
}

// FailOpen makes opening the file at path for reading fail with err.
func (f *FailingFs) FailOpen(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open[path] = err
}

// FailMkdir makes MkdirAll fail with err when creating path.
func (f *FailingFs) FailMkdir(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mkdir[path] = err
}

// FailList makes listing the directory at path fail with err.
func (f *FailingFs) FailList(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings[path] = err
}

func (f *FailingFs) lookup(m map[string]error, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return m[path]
}

func (f *FailingFs) Open(name string) (afero.File, error) {
	if err := f.lookup(f.listings, name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	if err := f.lookup(f.open, name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

func (f *FailingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.lookup(f.open, name); err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FailingFs) MkdirAll(path string, perm os.FileMode) error {
	if err := f.lookup(f.mkdir, path); err != nil {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return f.Fs.MkdirAll(path, perm)
}
