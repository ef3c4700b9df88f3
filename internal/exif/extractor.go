// Package exif reads capture metadata from EXIF blocks using goexif.
package exif

import (
	"bytes"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"exifsort/internal/sorter"
)

func init() {
	goexif.RegisterParsers(mknote.All...)
}

// Extractor decodes EXIF from JPEG, TIFF and TIFF-based raw files.
// It is stateless and safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the capture timestamp (DateTimeOriginal, else DateTime)
// and the maker-note counters when the camera recorded them. Shutter count
// comes from Nikon maker notes and the sequence number from the Canon file
// number. The timestamp is the camera's wall clock.
func (e *Extractor) Extract(buf []byte) (meta sorter.CaptureMetadata, ok bool) {
	defer func() {
		// Maker-note parsers index into tag data without bounds checks and
		// can panic on truncated or vendor-mangled notes.
		if r := recover(); r != nil {
			meta, ok = sorter.CaptureMetadata{}, false
		}
	}()

	x, err := goexif.Decode(bytes.NewReader(buf))
	if err != nil && (x == nil || goexif.IsCriticalError(err)) {
		return sorter.CaptureMetadata{}, false
	}

	taken, err := x.DateTime()
	if err != nil || taken.IsZero() {
		return sorter.CaptureMetadata{}, false
	}

	return sorter.CaptureMetadata{
		Taken:          taken,
		ShutterCount:   intField(x, mknote.ShutterCount),
		SequenceNumber: intField(x, mknote.FileNumber),
	}, true
}

// intField returns the first integer value of the named field, or 0.
func intField(x *goexif.Exif, name goexif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil || tag.Count == 0 {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

var _ sorter.MetadataExtractor = (*Extractor)(nil)
