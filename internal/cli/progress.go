package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressReporter renders a progress bar over the file export run.
type progressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newProgressReporter(quiet bool) *progressReporter {
	return &progressReporter{quiet: quiet}
}

func (p *progressReporter) start(totalFiles int) {
	if p.quiet {
		return
	}
	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Parsing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (p *progressReporter) fileDone() {
	if p.quiet || p.bar == nil {
		return
	}
	p.bar.Add(1)
}

func (p *progressReporter) finish() {
	if p.quiet || p.bar == nil {
		return
	}
	p.bar.Finish()
	p.bar = nil
}
