package hexdump

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asciiColumn is where the first '|' lands on every line
const asciiColumn = 8 + 1 + BytesPerLine*3 - 1 + 2

type failingWriter struct {
	buf     bytes.Buffer
	failAt  int
	writes  int
	err     error
	shortBy int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes == w.failAt {
		if w.err != nil {
			return 0, w.err
		}
		return len(p) - w.shortBy, nil
	}
	return w.buf.Write(p)
}

func TestFormatLineShortChunk(t *testing.T) {
	out := FormatLine([]byte("abc"), 0)
	assert.Equal(t, "00000000 61 62 63"+strings.Repeat(" ", 41)+"|abc|\n", out)
}

func TestFormatLineFullChunk(t *testing.T) {
	out := FormatLine(make([]byte, 16), 0)
	expected := "00000000 " + strings.TrimSpace(strings.Repeat("00 ", 16)) + "  |" + strings.Repeat(".", 16) + "|\n"
	assert.Equal(t, expected, out)
}

func TestFormatLineOffset(t *testing.T) {
	out := FormatLine([]byte{0xff}, 0xdeadbee0)
	assert.True(t, strings.HasPrefix(out, "deadbee0 ff "))
	assert.True(t, strings.HasSuffix(out, "  |.|\n"))
}

func TestFormatLineAlignment(t *testing.T) {
	for n := 1; n <= BytesPerLine; n++ {
		line := FormatLine(bytes.Repeat([]byte{'a'}, n), uint32(n*16))
		assert.Equal(t, asciiColumn, strings.IndexByte(line, '|'), "chunk of %d bytes", n)
		assert.Equal(t, 1, strings.Count(line, "\n"))
		assert.Equal(t, asciiColumn+1+n+2, len(line))
	}
}

func TestFormatLineByteFidelity(t *testing.T) {
	chunk := []byte{0x00, 0x7f, 0x80, 0xab, 0x20, 0x7e, 0x0a}
	line := FormatLine(chunk, 0)
	group := strings.TrimRight(line[9:asciiColumn], " ")
	decoded, err := hex.DecodeString(strings.ReplaceAll(group, " ", ""))
	require.Nil(t, err)
	assert.Equal(t, chunk, decoded)
	assert.Equal(t, strings.ToLower(group), group)
}

func TestPrintable(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		if b >= 0x20 && b <= 0x7e {
			assert.Equal(t, b, Printable(b))
		} else {
			assert.Equal(t, byte('.'), Printable(b))
		}
	}
}

func TestDumpTwoChunks(t *testing.T) {
	src := []byte("0123456789abcdefWXYZ")
	var out bytes.Buffer
	require.Nil(t, Dump(bytes.NewReader(src), &out))

	lines := strings.SplitAfter(out.String(), "\n")
	lines = lines[:len(lines)-1]
	require.Len(t, lines, 2)
	assert.Equal(t, FormatLine(src[:16], 0), lines[0])
	assert.Equal(t, FormatLine(src[16:], 16), lines[1])
}

func TestDumpEmpty(t *testing.T) {
	w := &failingWriter{failAt: 1, err: errors.New("should not write")}
	assert.Nil(t, Dump(bytes.NewReader(nil), w))
	assert.Equal(t, 0, w.writes)
}

func TestDumpOffsetsAdvanceByStride(t *testing.T) {
	src := bytes.Repeat([]byte{'x'}, 16*5+3)
	var out bytes.Buffer
	d := New(bytes.NewReader(src), &out)
	require.Nil(t, d.Run())
	assert.EqualValues(t, 6, d.Lines())
	assert.EqualValues(t, len(src), d.Bytes())

	for i, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		assert.Equal(t, FormatLine(nil, uint32(i*16))[:8], line[:8])
	}
}

func TestDumpShortReads(t *testing.T) {
	src := []byte("0123456789abcdefWXYZ")
	var a, b bytes.Buffer
	require.Nil(t, Dump(bytes.NewReader(src), &a))
	require.Nil(t, Dump(iotest.OneByteReader(bytes.NewReader(src)), &b))
	assert.Equal(t, a.String(), b.String())

	var c bytes.Buffer
	require.Nil(t, Dump(iotest.DataErrReader(bytes.NewReader(src)), &c))
	assert.Equal(t, a.String(), c.String())
}

func TestDumpReadError(t *testing.T) {
	errBoom := errors.New("boom")
	src := io.MultiReader(bytes.NewReader(make([]byte, 32)), iotest.ErrReader(errBoom))
	var out bytes.Buffer
	err := Dump(src, &out)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, err, ErrRead)
	assert.NotErrorIs(t, err, ErrWrite)

	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, KindRead, derr.Kind)
	assert.EqualValues(t, 32, derr.Offset)
	assert.Equal(t, 2, strings.Count(out.String(), "\n"))
}

func TestDumpReadErrorDropsPartialChunk(t *testing.T) {
	errBoom := errors.New("boom")
	src := io.MultiReader(bytes.NewReader(make([]byte, 20)), iotest.ErrReader(errBoom))
	var out bytes.Buffer
	err := Dump(src, &out)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, FormatLine(make([]byte, 16), 0), out.String())
}

func TestDumpUnexpectedEOFIsReadError(t *testing.T) {
	src := io.MultiReader(bytes.NewReader([]byte("abc")), iotest.ErrReader(io.ErrUnexpectedEOF))
	var out bytes.Buffer
	err := Dump(src, &out)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrRead)
	assert.Empty(t, out.String())
}

type stalledReader struct {
	data  []byte
	reads int
}

func (r *stalledReader) Read(p []byte) (int, error) {
	r.reads++
	if len(r.data) > 0 {
		n := copy(p, r.data)
		r.data = r.data[n:]
		return n, nil
	}
	return 0, nil
}

func TestDumpNoProgress(t *testing.T) {
	src := &stalledReader{data: make([]byte, 20)}
	var out bytes.Buffer
	err := Dump(src, &out)
	assert.ErrorIs(t, err, io.ErrNoProgress)
	assert.ErrorIs(t, err, ErrRead)

	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, KindRead, derr.Kind)
	assert.EqualValues(t, 16, derr.Offset)
	assert.Equal(t, FormatLine(make([]byte, 16), 0), out.String())
	assert.Equal(t, 2+maxConsecutiveEmptyReads, src.reads)
}

func TestDumpWriteError(t *testing.T) {
	errFull := errors.New("disk full")
	w := &failingWriter{failAt: 3, err: errFull}
	err := Dump(bytes.NewReader(make([]byte, 100)), w)
	assert.ErrorIs(t, err, errFull)
	assert.ErrorIs(t, err, ErrWrite)
	assert.Equal(t, 3, w.writes)
	assert.Equal(t, 2, strings.Count(w.buf.String(), "\n"))
	assert.Equal(t, "hexdump write failed at offset 00000020: disk full", err.Error())
}

func TestDumpShortWrite(t *testing.T) {
	w := &failingWriter{failAt: 1, shortBy: 1}
	err := Dump(bytes.NewReader([]byte("abc")), w)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.ErrorIs(t, err, ErrWrite)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "read", KindRead.String())
	assert.Equal(t, "write", KindWrite.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func BenchmarkFormatLine(b *testing.B) {
	chunk := []byte("The Frog and the")
	for i := 0; i < b.N; i++ {
		FormatLine(chunk, uint32(i))
	}
}

func BenchmarkDump(b *testing.B) {
	data := bytes.Repeat([]byte("The Frog and the Crocodile\n"), 4096)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		Dump(bytes.NewReader(data), io.Discard)
	}
}
