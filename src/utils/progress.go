package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressReader counts the bytes read from a source on a progress bar.
type ProgressReader struct {
	r   io.Reader
	bar *progressbar.ProgressBar
}

// NewProgressReader wraps r with a progress bar written to w. A size of -1
// shows a spinner instead of a bar.
func NewProgressReader(r io.Reader, size int64, description string, w io.Writer) *ProgressReader {
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionFullWidth(),
	)
	return &ProgressReader{r: io.TeeReader(r, bar), bar: bar}
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	return pr.r.Read(p)
}

// Finish completes the bar, or clears it if the read did not get to the end.
func (pr *ProgressReader) Finish(err error) {
	if err != nil {
		pr.bar.Exit()
		return
	}
	pr.bar.Finish()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
