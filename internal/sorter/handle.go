package sorter

import (
	"errors"
	"path/filepath"
	"time"
)

// ErrInvalidInput is returned when the input root does not exist or is not a
// directory. No work is attempted after it.
var ErrInvalidInput = errors.New("invalid input")

// FileHandle is a regular file discovered under the input root.
// Handles are created by a Walker and never mutated afterwards.
type FileHandle struct {
	Path string // absolute
	Size int64
	Ext  string // as found on the source, including the leading dot
}

// NewFileHandle creates a FileHandle, taking the extension from path.
func NewFileHandle(path string, size int64) FileHandle {
	return FileHandle{
		Path: path,
		Size: size,
		Ext:  filepath.Ext(path),
	}
}

// CaptureMetadata is what a MetadataExtractor reports for one file.
// Zero counters mean the value was not present.
type CaptureMetadata struct {
	Taken          time.Time
	ShutterCount   int
	SequenceNumber int
}

// Ordinal returns the shutter count if set, else the sequence number if set,
// else fallback.
func (m CaptureMetadata) Ordinal(fallback int) int {
	if m.ShutterCount != 0 {
		return m.ShutterCount
	}
	if m.SequenceNumber != 0 {
		return m.SequenceNumber
	}
	return fallback
}
