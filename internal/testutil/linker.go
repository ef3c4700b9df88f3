package testutil

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"
)

// LinkCall is one recorded Link invocation.
type LinkCall struct {
	Source string
	Dest   string
}

// RecordingLinker writes a small marker file holding the source path at each
// destination, so tests can observe links on an afero.MemMapFs.
// Safe for concurrent use.
type RecordingLinker struct {
	fs    afero.Fs
	mu    sync.Mutex
	calls []LinkCall
	fail  map[string]error
}

func NewRecordingLinker(fsys afero.Fs) *RecordingLinker {
	return &RecordingLinker{fs: fsys, fail: make(map[string]error)}
}

// FailFor makes Link return err for the given source path.
func (l *RecordingLinker) FailFor(source string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fail[source] = err
}

func (l *RecordingLinker) Name() string { return "recording" }

func (l *RecordingLinker) Link(source, dest string) error {
	l.mu.Lock()
	l.calls = append(l.calls, LinkCall{Source: source, Dest: dest})
	err := l.fail[source]
	l.mu.Unlock()
	if err != nil {
		return err
	}

	f, err := l.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprint(f, source)
	return err
}

// Calls returns a copy of the recorded calls.
func (l *RecordingLinker) Calls() []LinkCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LinkCall(nil), l.calls...)
}

// Target reads the source path recorded at dest.
func (l *RecordingLinker) Target(dest string) (string, error) {
	b, err := afero.ReadFile(l.fs, dest)
	return string(b), err
}
