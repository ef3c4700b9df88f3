package testutil

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"exifsort/internal/sorter"
)

const stubMagic = "STUBMETA|"

// StubContent returns file content that StubExtractor decodes to the given
// metadata, padded with zeros to size bytes.
func StubContent(taken time.Time, shutter, sequence, size int) []byte {
	head := fmt.Sprintf("%s%s|%d|%d\n", stubMagic, taken.Format(time.RFC3339), shutter, sequence)
	buf := []byte(head)
	if size > len(buf) {
		buf = append(buf, make([]byte, size-len(buf))...)
	}
	return buf
}

// StubExtractor decodes content produced by StubContent. It records the
// buffers it was handed. Safe for concurrent use.
type StubExtractor struct {
	mu     sync.Mutex
	calls  int
	maxLen int
}

func NewStubExtractor() *StubExtractor {
	return &StubExtractor{}
}

func (e *StubExtractor) Extract(buf []byte) (sorter.CaptureMetadata, bool) {
	e.mu.Lock()
	e.calls++
	e.maxLen = max(e.maxLen, len(buf))
	e.mu.Unlock()

	if !bytes.HasPrefix(buf, []byte(stubMagic)) {
		return sorter.CaptureMetadata{}, false
	}
	line, _, _ := bytes.Cut(buf[len(stubMagic):], []byte("\n"))
	parts := strings.Split(string(line), "|")
	if len(parts) != 3 {
		return sorter.CaptureMetadata{}, false
	}
	taken, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return sorter.CaptureMetadata{}, false
	}
	shutter, _ := strconv.Atoi(parts[1])
	seq, _ := strconv.Atoi(parts[2])
	return sorter.CaptureMetadata{Taken: taken, ShutterCount: shutter, SequenceNumber: seq}, true
}

// Calls returns how many buffers were decoded.
func (e *StubExtractor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// MaxLen returns the length of the largest buffer seen.
func (e *StubExtractor) MaxLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxLen
}
