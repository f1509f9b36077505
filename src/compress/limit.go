package compress

import "io"

type limitedReader struct {
	r    io.Reader
	left int64
}

// LimitReader returns a reader that fails with ErrTooLarge once r has produced
// more than max bytes. A max of zero or less disables the limit.
func LimitReader(r io.Reader, max int64) io.Reader {
	if max <= 0 {
		return r
	}
	return &limitedReader{r: r, left: max}
}

func (l *limitedReader) Read(p []byte) (n int, err error) {
	if l.left < 0 {
		return 0, ErrTooLarge
	}
	// read one byte past the limit so an exact fit still ends cleanly
	if int64(len(p)) > l.left+1 {
		p = p[:l.left+1]
	}
	n, err = l.r.Read(p)
	l.left -= int64(n)
	if l.left < 0 {
		n += int(l.left)
		return n, ErrTooLarge
	}
	return n, err
}
