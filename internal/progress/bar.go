package progress

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// NewBar returns a Reporter that renders a terminal progress bar for a
// batch of total items. When enabled is false (quiet mode, piped
// output) it returns Discard so callers never need a nil check.
func NewBar(w io.Writer, total int, description string, enabled bool) Reporter {
	if !enabled {
		return Discard
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	return &barReporter{bar: bar}
}

type barReporter struct {
	bar *progressbar.ProgressBar
}

func (b *barReporter) Checkpoint(completed, remaining int) {
	_ = b.bar.Set(completed)
	if remaining == 0 {
		_ = b.bar.Finish()
	}
}
