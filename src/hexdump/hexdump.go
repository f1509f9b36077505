package hexdump

import (
	"fmt"
	"io"
	"strings"
)

// BytesPerLine is the number of bytes rendered on each line
const BytesPerLine = 16

const maxConsecutiveEmptyReads = 100

// Dumper writes a hexdump of everything read from its source into its sink,
// one line per 16 byte chunk.
type Dumper struct {
	src io.Reader
	dst io.Writer

	buf    [BytesPerLine]byte
	offset uint32
	lines  int64
	bytes  int64
}

// New returns a Dumper reading from r and writing lines to w.
func New(r io.Reader, w io.Writer) *Dumper {
	return &Dumper{src: r, dst: w}
}

// Dump reads r until it is exhausted and writes the hexdump to w.
func Dump(r io.Reader, w io.Writer) error {
	return New(r, w).Run()
}

// Run consumes the source. It stops at the first read or write error, leaving
// whatever lines were already written in the sink.
func (d *Dumper) Run() error {
	for {
		n, err := d.fill()
		if err != nil && err != io.EOF {
			return &Error{Kind: KindRead, Offset: d.offset, Err: err}
		}
		if n > 0 {
			if werr := d.writeLine(d.buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// fill reads until the buffer is full or the source returns an error, so
// every chunk but the last holds BytesPerLine bytes.
func (d *Dumper) fill() (n int, err error) {
	empty := 0
	for n < len(d.buf) && err == nil {
		var nn int
		nn, err = d.src.Read(d.buf[n:])
		n += nn
		if nn > 0 {
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxConsecutiveEmptyReads {
				err = io.ErrNoProgress
			}
		}
	}
	return
}

// Lines returns the number of lines written so far.
func (d *Dumper) Lines() int64 {
	return d.lines
}

// Bytes returns the number of source bytes rendered so far.
func (d *Dumper) Bytes() int64 {
	return d.bytes
}

func (d *Dumper) writeLine(chunk []byte) error {
	line := FormatLine(chunk, d.offset)
	n, err := io.WriteString(d.dst, line)
	if err == nil && n != len(line) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &Error{Kind: KindWrite, Offset: d.offset, Err: err}
	}
	d.lines++
	d.bytes += int64(len(chunk))
	// the label advances by the full stride even for a short final chunk
	d.offset += BytesPerLine
	return nil
}

// FormatLine renders one hexdump line for chunk, labelled with offset.
// The ascii column starts at the same position for every chunk length
// between 1 and BytesPerLine.
func FormatLine(chunk []byte, offset uint32) string {
	var sb strings.Builder
	sb.Grow(8 + 1 + BytesPerLine*3 + 2 + len(chunk) + 3)

	fmt.Fprintf(&sb, "%08x ", offset)
	for i, b := range chunk {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(hexDigits[b>>4])
		sb.WriteByte(hexDigits[b&0x0f])
	}
	if pad := BytesPerLine - len(chunk); pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad*3))
	}
	sb.WriteString("  |")
	for _, b := range chunk {
		sb.WriteByte(Printable(b))
	}
	sb.WriteString("|\n")
	return sb.String()
}

// Printable returns b if it is printable ascii, otherwise '.'
func Printable(b byte) byte {
	if b >= 0x20 && b <= 0x7e {
		return b
	}
	return '.'
}

const hexDigits = "0123456789abcdef"
