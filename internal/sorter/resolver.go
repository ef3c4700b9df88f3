package sorter

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

// HourFormat selects the clock used for the hour field of a destination name.
type HourFormat string

const (
	// Hour12 writes hours on a 12-hour clock without an AM/PM marker, so
	// 14:30:05 becomes 02-30-05. Existing libraries were built this way.
	Hour12 HourFormat = "12h"
	Hour24 HourFormat = "24h"
)

// ParseHourFormat validates s. An empty string selects Hour12.
func ParseHourFormat(s string) (HourFormat, error) {
	switch HourFormat(s) {
	case "", Hour12:
		return Hour12, nil
	case Hour24:
		return Hour24, nil
	default:
		return "", fmt.Errorf("unknown hour format %q (want 12h or 24h)", s)
	}
}

// Disambiguator selects the suffix that separates files captured in the
// same second.
type Disambiguator string

const (
	// BySize uses the file's byte length.
	BySize Disambiguator = "size"
	// ByOrdinal uses shutter count, then sequence number, then the file's
	// index in the walked list.
	ByOrdinal Disambiguator = "ordinal"
)

// ParseDisambiguator validates s. An empty string selects BySize.
func ParseDisambiguator(s string) (Disambiguator, error) {
	switch Disambiguator(s) {
	case "", BySize:
		return BySize, nil
	case ByOrdinal:
		return ByOrdinal, nil
	default:
		return "", fmt.Errorf("unknown disambiguator %q (want size or ordinal)", s)
	}
}

// Destination is the place a file is linked to, relative to the output root:
//
//	<Year>/<Month>/<Day>/<Name>
//	2023/2023-06-June/2023-06-15/2023-06-15-02-30-05-921600.jpg
type Destination struct {
	Year  string
	Month string
	Day   string
	Name  string
}

// Dir returns the directory holding the link under root.
func (d Destination) Dir(root string) string {
	return filepath.Join(root, d.Year, d.Month, d.Day)
}

// Path returns the full link path under root.
// With an empty root the result is relative.
func (d Destination) Path(root string) string {
	return filepath.Join(d.Dir(root), d.Name)
}

// DestinationResolver derives destinations from capture metadata.
// It holds no mutable state: identical inputs give identical outputs.
type DestinationResolver struct {
	hours HourFormat
	by    Disambiguator
}

// NewDestinationResolver creates a resolver. Zero values select Hour12 and BySize.
func NewDestinationResolver(hours HourFormat, by Disambiguator) DestinationResolver {
	if hours == "" {
		hours = Hour12
	}
	if by == "" {
		by = BySize
	}
	return DestinationResolver{hours: hours, by: by}
}

// Resolve maps a capture timestamp, byte length, extension and ordinal to a
// destination. The timestamp is used in its own location.
func (r DestinationResolver) Resolve(taken time.Time, size int64, ext string, ordinal int) Destination {
	stampLayout := "2006-01-02-03-04-05"
	if r.hours == Hour24 {
		stampLayout = "2006-01-02-15-04-05"
	}

	suffix := strconv.FormatInt(size, 10)
	if r.by == ByOrdinal {
		suffix = strconv.Itoa(ordinal)
	}

	return Destination{
		Year:  taken.Format("2006"),
		Month: taken.Format("2006-01-January"),
		Day:   taken.Format("2006-01-02"),
		Name:  taken.Format(stampLayout) + "-" + suffix + ext,
	}
}
