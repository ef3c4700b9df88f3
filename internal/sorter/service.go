package sorter

import (
	"context"
	"fmt"
	"path/filepath"
)

// PlannedLink is a link a run would create.
type PlannedLink struct {
	Source  string
	Rel     string // destination relative to the output root
	Ordinal int
}

// SortService coordinates the walker, the dispatcher and the processor to
// sort one input tree into one output tree.
type SortService struct {
	walker     Walker
	processor  *Processor
	dispatcher *Dispatcher
	logger     Logger
	clock      Clock
}

// NewSortService creates a SortService.
func NewSortService(walker Walker, processor *Processor, workers int, logger Logger, clock Clock) *SortService {
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &SortService{
		walker:     walker,
		processor:  processor,
		dispatcher: NewDispatcher(processor, workers),
		logger:     logger,
		clock:      clock,
	}
}

// SetObserver forwards o to the dispatcher.
func (s *SortService) SetObserver(o Observer) {
	s.dispatcher.SetObserver(o)
}

// Workers returns the effective parallelism bound.
func (s *SortService) Workers() int { return s.dispatcher.Workers() }

// Run sorts every file under input into output. The returned error is
// non-nil only when the run could not start (for example, input is not a
// directory); per-file problems are reported in the Report.
func (s *SortService) Run(ctx context.Context, input, output string) (*Report, error) {
	in, out, err := absPaths(input, output)
	if err != nil {
		return nil, err
	}

	report := &Report{Input: in, Output: out, StartedAt: s.clock.Now()}

	files, err := s.walker.Walk(in, out)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", in, err)
	}
	s.logger.Info("run started", "input", in, "output", out, "files", len(files), "workers", s.dispatcher.Workers())

	report.Results = s.dispatcher.Dispatch(ctx, files, out)
	report.FinishedAt = s.clock.Now()
	report.tally()

	s.logger.Info("run finished",
		"total", report.Total,
		"linked", report.Linked,
		"exists", report.Exists,
		"skipped", report.Skipped,
		"unreadable", report.Unreadable,
		"failed", report.Failed,
		"cancelled", report.Cancelled,
	)
	return report, nil
}

// Plan walks input and resolves destinations without creating anything.
// Files without usable metadata are left out. When output is non-empty and
// nested inside input it is excluded from the walk, as in Run.
func (s *SortService) Plan(ctx context.Context, input, output string) ([]PlannedLink, error) {
	in, out, err := absPaths(input, output)
	if err != nil {
		return nil, err
	}

	var exclude []string
	if out != "" {
		exclude = append(exclude, out)
	}
	files, err := s.walker.Walk(in, exclude...)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", in, err)
	}

	var plan []PlannedLink
	for i, h := range files {
		if err := ctx.Err(); err != nil {
			return plan, err
		}
		dest, res, ok := s.processor.Classify(h, i)
		if !ok {
			continue
		}
		plan = append(plan, PlannedLink{Source: h.Path, Rel: dest.Path(""), Ordinal: res.Ordinal})
	}
	return plan, nil
}

func absPaths(input, output string) (string, string, error) {
	in, err := filepath.Abs(input)
	if err != nil {
		return "", "", fmt.Errorf("resolving input path: %w", err)
	}
	if output == "" {
		return in, "", nil
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return "", "", fmt.Errorf("resolving output path: %w", err)
	}
	return in, out, nil
}
