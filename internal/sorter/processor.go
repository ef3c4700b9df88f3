package sorter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// DefaultReadLimit bounds how much of each file is read for metadata.
const DefaultReadLimit int64 = 20 * 1048576

// FileProcessor handles a single file end to end.
type FileProcessor interface {
	Process(ctx context.Context, h FileHandle, fallback int, outRoot string) Result
}

// ReadError reports a file that could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Processor reads the head of a file, extracts capture metadata, resolves a
// destination and places a link there. A failure on one file is recorded in
// its Result and never affects other files.
type Processor struct {
	fs        afero.Fs
	extractor MetadataExtractor
	linker    Linker
	resolver  DestinationResolver
	readLimit int64
	logger    Logger
}

// NewProcessor creates a Processor. A readLimit <= 0 selects DefaultReadLimit.
func NewProcessor(fsys afero.Fs, extractor MetadataExtractor, linker Linker, resolver DestinationResolver, readLimit int64, logger Logger) *Processor {
	if readLimit <= 0 {
		readLimit = DefaultReadLimit
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Processor{
		fs:        fsys,
		extractor: extractor,
		linker:    linker,
		resolver:  resolver,
		readLimit: readLimit,
		logger:    logger,
	}
}

// ReadLimit returns the maximum number of bytes read from any file.
func (p *Processor) ReadLimit() int64 { return p.readLimit }

// Classify reads and decodes h and resolves its destination without touching
// the output tree. ok is false when the file is unreadable or carries no
// usable metadata; res then holds the Skipped or Unreadable outcome.
func (p *Processor) Classify(h FileHandle, fallback int) (dest Destination, res Result, ok bool) {
	res = Result{File: h, Ordinal: fallback}

	buf, err := p.readHead(h)
	if err != nil {
		res.Outcome = OutcomeUnreadable
		res.Err = err
		return Destination{}, res, false
	}
	if len(buf) == 0 {
		res.Outcome = OutcomeSkipped
		return Destination{}, res, false
	}

	meta, found := p.extractor.Extract(buf)
	if !found || meta.Taken.IsZero() {
		res.Outcome = OutcomeSkipped
		return Destination{}, res, false
	}

	res.Ordinal = meta.Ordinal(fallback)
	dest = p.resolver.Resolve(meta.Taken, h.Size, h.Ext, res.Ordinal)
	return dest, res, true
}

// Process runs the full pipeline for h. fallback is the file's index in the
// walked list and is used when the metadata carries no counters.
func (p *Processor) Process(ctx context.Context, h FileHandle, fallback int, outRoot string) Result {
	if err := ctx.Err(); err != nil {
		return Result{File: h, Ordinal: fallback, Outcome: OutcomeCancelled, Err: err}
	}

	dest, res, ok := p.Classify(h, fallback)
	if !ok {
		switch res.Outcome {
		case OutcomeUnreadable:
			p.logger.Warn("file unreadable", "path", h.Path, "error", res.Err)
		default:
			p.logger.Debug("no capture metadata", "path", h.Path)
		}
		return res
	}

	res.Dest = dest.Path(outRoot)

	if err := p.fs.MkdirAll(dest.Dir(outRoot), 0o755); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("creating directory: %w", err)
		p.logger.Error("link failed", "path", h.Path, "dest", res.Dest, "error", res.Err)
		return res
	}

	// Every backend refuses an occupied destination, dangling symlinks
	// included, with an error wrapping fs.ErrExist.
	if err := p.linker.Link(h.Path, res.Dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			res.Outcome = OutcomeExists
			p.logger.Info("destination exists", "path", h.Path, "dest", res.Dest)
			return res
		}
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("linking: %w", err)
		p.logger.Error("link failed", "path", h.Path, "dest", res.Dest, "error", res.Err)
		return res
	}

	res.Outcome = OutcomeLinked
	p.logger.Debug("linked", "path", h.Path, "dest", res.Dest, "linker", p.linker.Name())
	return res
}

// readHead returns the first min(Size, readLimit) bytes of the file. A file
// that shrank since it was walked yields the bytes actually present.
func (p *Processor) readHead(h FileHandle) ([]byte, error) {
	n := min(h.Size, p.readLimit)
	if n <= 0 {
		return nil, nil
	}

	f, err := p.fs.OpenFile(h.Path, os.O_RDONLY, 0)
	if err != nil {
		return nil, &ReadError{Path: h.Path, Err: err}
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, &ReadError{Path: h.Path, Err: err}
	}
	return buf[:read], nil
}
