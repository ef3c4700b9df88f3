package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"exifsort/internal/config"
	"exifsort/internal/exif"
	"exifsort/internal/fs"
	"exifsort/internal/link"
	"exifsort/internal/sorter"
)

// InvocationError marks a problem with how the tool was invoked, such as a
// missing input directory. The CLI exits with status 2 for it.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string { return e.Err.Error() }
func (e *InvocationError) Unwrap() error { return e.Err }

// SortApp is the application layer between the CLI and SortService.
// It constructs all dependencies from config, owns the log file and guards
// the output root with a lock for the duration of a sort.
type SortApp struct {
	cfg     *config.Config
	fs      afero.Fs
	linker  sorter.Linker
	service *sorter.SortService
	record  *RunRecord
	logger  *slog.Logger
	logFile *os.File
}

type appDeps struct {
	fs     afero.Fs
	idgen  sorter.IDGenerator
	clock  sorter.Clock
	stderr io.Writer
}

// NewSortApp creates a fully wired SortApp from the given config.
// command and args identify the CLI invocation in the log.
// The caller must call Close when done.
func NewSortApp(cfg *config.Config, command string, args ...string) (*SortApp, error) {
	return newSortApp(cfg, appDeps{
		fs:     afero.NewOsFs(),
		idgen:  sorter.UUIDGenerator{},
		clock:  sorter.RealClock{},
		stderr: os.Stderr,
	}, command, args...)
}

func newSortApp(cfg *config.Config, deps appDeps, command string, args ...string) (*SortApp, error) {
	hours, err := sorter.ParseHourFormat(cfg.Naming.Clock)
	if err != nil {
		return nil, err
	}
	by, err := sorter.ParseDisambiguator(cfg.Naming.Disambiguator)
	if err != nil {
		return nil, err
	}
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	linker, err := link.NewLinkerFromConfig(cfg.Link, deps.fs)
	if err != nil {
		return nil, fmt.Errorf("creating linker: %w", err)
	}

	runID := deps.idgen.New()
	logger, logFile, err := newLogger(cfg.LogDir, runID, level, deps.stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	adapter := &slogAdapter{l: logger}

	walker := fs.NewTreeWalker(deps.fs, cfg.Filesystem.Ignore, adapter)
	resolver := sorter.NewDestinationResolver(hours, by)
	processor := sorter.NewProcessor(deps.fs, exif.NewExtractor(), linker, resolver, cfg.ReadLimit, adapter)
	svc := sorter.NewSortService(walker, processor, cfg.Workers, adapter, deps.clock)

	return &SortApp{
		cfg:     cfg,
		fs:      deps.fs,
		linker:  linker,
		service: svc,
		record:  NewRunRecord(runID, command, args...),
		logger:  logger,
		logFile: logFile,
	}, nil
}

// RunID identifies this invocation in the log file.
func (a *SortApp) RunID() string { return a.record.ID }

// LinkerName returns the configured link backend.
func (a *SortApp) LinkerName() string { return a.linker.Name() }

// Workers returns the effective parallelism bound.
func (a *SortApp) Workers() int { return a.service.Workers() }

// Sort links every file with capture metadata under input into output.
// obs, when non-nil, receives progress callbacks.
func (a *SortApp) Sort(ctx context.Context, input, output string, obs sorter.Observer) (*sorter.Report, error) {
	report, err := a.sort(ctx, input, output, obs)
	if report != nil {
		a.record.Finish(err, report.Failed, report.Cancelled)
	} else {
		a.record.Finish(err, 0, 0)
	}
	return report, err
}

func (a *SortApp) sort(ctx context.Context, input, output string, obs sorter.Observer) (*sorter.Report, error) {
	if err := a.checkInput(input); err != nil {
		return nil, err
	}

	absOut, err := filepath.Abs(output)
	if err != nil {
		return nil, &InvocationError{Err: fmt.Errorf("resolving output path: %w", err)}
	}
	if err := a.fs.MkdirAll(absOut, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	lock, err := acquireOutputLock(absOut)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			a.logger.Warn("releasing output lock", "error", err)
		}
	}()

	a.service.SetObserver(obs)
	report, err := a.service.Run(ctx, input, absOut)
	if errors.Is(err, sorter.ErrInvalidInput) {
		return nil, &InvocationError{Err: err}
	}
	return report, err
}

// Plan resolves where each file under input would be linked, without
// touching any filesystem state.
func (a *SortApp) Plan(ctx context.Context, input string) ([]sorter.PlannedLink, error) {
	if err := a.checkInput(input); err != nil {
		a.record.Finish(err, 0, 0)
		return nil, err
	}
	plan, err := a.service.Plan(ctx, input, "")
	a.record.Finish(err, 0, 0)
	return plan, err
}

// checkInput rejects a missing or non-directory input root before any
// output state is created.
func (a *SortApp) checkInput(input string) error {
	info, err := a.fs.Stat(input)
	if err != nil {
		return &InvocationError{Err: fmt.Errorf("%w: %s: %v", sorter.ErrInvalidInput, input, err)}
	}
	if !info.IsDir() {
		return &InvocationError{Err: fmt.Errorf("%w: %s is not a directory", sorter.ErrInvalidInput, input)}
	}
	return nil
}

// Close logs the run record and closes the log file.
func (a *SortApp) Close() error {
	a.logger.Info("run closed",
		"command", a.record.Command,
		"parameters", a.record.Parameters,
		"status", a.record.Status,
	)
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
	}
	return nil
}
