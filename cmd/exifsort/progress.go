package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"exifsort/internal/sorter"
)

// progressObserver draws a bar while files are dispatched.
type progressObserver struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w}
}

func (p *progressObserver) DispatchStarted(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("sorting"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// FileDone is called from worker goroutines; the bar locks internally.
func (p *progressObserver) FileDone(sorter.Result) {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *progressObserver) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

// observerOrNil avoids handing a typed nil to the dispatcher.
func observerOrNil(p *progressObserver) sorter.Observer {
	if p == nil {
		return nil
	}
	return p
}
