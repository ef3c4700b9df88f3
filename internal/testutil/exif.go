package testutil

import (
	"bytes"
	"encoding/binary"
	"time"
)

const exifLayout = "2006:01:02 15:04:05"

type tiffEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value []byte
}

func asciiEntry(tag uint16, s string) tiffEntry {
	v := append([]byte(s), 0)
	return tiffEntry{tag: tag, typ: 2, count: uint32(len(v)), value: v}
}

func longEntry(tag uint16, v uint32) tiffEntry {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return tiffEntry{tag: tag, typ: 4, count: 1, value: b}
}

func makerNoteEntry(note []byte) tiffEntry {
	return tiffEntry{tag: 0x927c, typ: 7, count: uint32(len(note)), value: note}
}

// inlineIFD encodes a directory whose values all fit in their entries.
func inlineIFD(entries ...tiffEntry) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(&b, binary.LittleEndian, e.tag)
		binary.Write(&b, binary.LittleEndian, e.typ)
		binary.Write(&b, binary.LittleEndian, e.count)
		field := make([]byte, 4)
		copy(field, e.value)
		b.Write(field)
	}
	binary.Write(&b, binary.LittleEndian, uint32(0))
	return b.Bytes()
}

// ExifTIFFCanon returns a TIFF stream from a "Canon" body whose maker note
// records fileNumber (tag 0x0008), next to DateTimeOriginal = taken.
func ExifTIFFCanon(taken time.Time, fileNumber uint32) []byte {
	note := inlineIFD(longEntry(0x0008, fileNumber))
	return buildTIFF(
		[]tiffEntry{asciiEntry(0x010f, "Canon")},
		[]tiffEntry{asciiEntry(0x9003, taken.Format(exifLayout)), makerNoteEntry(note)},
	)
}

// ExifTIFFNikon returns a TIFF stream whose Nikon type 3 maker note records
// shutterCount (tag 0x00a7), next to DateTimeOriginal = taken.
func ExifTIFFNikon(taken time.Time, shutterCount uint32) []byte {
	var note bytes.Buffer
	note.WriteString("Nikon\x00")
	note.Write([]byte{0x02, 0x10, 0x00, 0x00})
	note.WriteString("II")
	binary.Write(&note, binary.LittleEndian, uint16(42))
	binary.Write(&note, binary.LittleEndian, uint32(8))
	note.Write(inlineIFD(longEntry(0x00a7, shutterCount)))
	return buildTIFF(
		[]tiffEntry{asciiEntry(0x010f, "NIKON CORPORATION")},
		[]tiffEntry{asciiEntry(0x9003, taken.Format(exifLayout)), makerNoteEntry(note.Bytes())},
	)
}

// ExifTIFF returns a little-endian TIFF stream whose Exif sub-IFD carries
// DateTimeOriginal = taken.
func ExifTIFF(taken time.Time) []byte {
	return buildTIFF(nil, []tiffEntry{asciiEntry(0x9003, taken.Format(exifLayout))})
}

// ExifTIFFDateTime returns a TIFF stream carrying only the IFD0 DateTime tag.
func ExifTIFFDateTime(taken time.Time) []byte {
	return buildTIFF([]tiffEntry{asciiEntry(0x0132, taken.Format(exifLayout))}, nil)
}

// ExifTIFFNoDate returns a valid TIFF stream without any timestamp.
func ExifTIFFNoDate() []byte {
	return buildTIFF([]tiffEntry{asciiEntry(0x010f, "Nikon")}, nil)
}

// ExifJPEG wraps ExifTIFF(taken) in a JPEG APP1 segment and pads the stream
// with zeros to size bytes (when size is larger than the segment).
func ExifJPEG(taken time.Time, size int) []byte {
	return WrapJPEG(ExifTIFF(taken), size)
}

// WrapJPEG wraps a TIFF stream in SOI, an APP1 "Exif" segment and EOI.
func WrapJPEG(tiff []byte, size int) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	binary.Write(&b, binary.BigEndian, uint16(2+6+len(tiff)))
	b.WriteString("Exif\x00\x00")
	b.Write(tiff)
	if pad := size - b.Len() - 2; pad > 0 {
		b.Write(make([]byte, pad))
	}
	b.Write([]byte{0xFF, 0xD9})
	return b.Bytes()
}

func buildTIFF(ifd0, sub []tiffEntry) []byte {
	const headerLen = 8
	dirLen := func(n int) int { return 2 + 12*n + 4 }

	n0 := len(ifd0)
	if len(sub) > 0 {
		n0++
	}
	subOff := headerLen + dirLen(n0)
	dataOff := subOff
	if len(sub) > 0 {
		dataOff += dirLen(len(sub))
	}

	var data bytes.Buffer
	place := func(e tiffEntry) []byte {
		field := make([]byte, 4)
		if len(e.value) <= 4 {
			copy(field, e.value)
			return field
		}
		binary.LittleEndian.PutUint32(field, uint32(dataOff+data.Len()))
		data.Write(e.value)
		return field
	}

	var b bytes.Buffer
	b.WriteString("II")
	binary.Write(&b, binary.LittleEndian, uint16(42))
	binary.Write(&b, binary.LittleEndian, uint32(headerLen))

	writeDir := func(entries []tiffEntry) {
		binary.Write(&b, binary.LittleEndian, uint16(len(entries)))
		for _, e := range entries {
			binary.Write(&b, binary.LittleEndian, e.tag)
			binary.Write(&b, binary.LittleEndian, e.typ)
			binary.Write(&b, binary.LittleEndian, e.count)
			b.Write(place(e))
		}
		binary.Write(&b, binary.LittleEndian, uint32(0))
	}

	dir0 := append([]tiffEntry(nil), ifd0...)
	if len(sub) > 0 {
		ptr := make([]byte, 4)
		binary.LittleEndian.PutUint32(ptr, uint32(subOff))
		dir0 = append(dir0, tiffEntry{tag: 0x8769, typ: 4, count: 1, value: ptr})
	}
	writeDir(dir0)
	if len(sub) > 0 {
		writeDir(sub)
	}
	b.Write(data.Bytes())
	return b.Bytes()
}
