package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	log "github.com/schollz/logger"
)

// NewReader returns a reader that decompresses the zlib stream in r.
// The header is read immediately, so a bad header is reported here rather
// than on the first Read.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	return zr, nil
}

// IsZlib reports whether header starts with a valid RFC 1950 header:
// deflate method, a window of at most 32K and a correct check value.
func IsZlib(header []byte) bool {
	if len(header) < 2 {
		return false
	}
	cmf, flg := header[0], header[1]
	if cmf&0x0f != 8 || cmf>>4 > 7 {
		return false
	}
	return (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// CompressWithOption returns compressed data using the specified level
func CompressWithOption(src []byte, level int) ([]byte, error) {
	compressedData := new(bytes.Buffer)
	if err := compress(src, compressedData, level); err != nil {
		return nil, err
	}
	return compressedData.Bytes(), nil
}

// Compress returns a compressed byte slice.
func Compress(src []byte) ([]byte, error) {
	return CompressWithOption(src, zlib.DefaultCompression)
}

// Decompress returns a decompressed byte slice.
func Decompress(src []byte) ([]byte, error) {
	deCompressedData := new(bytes.Buffer)
	if err := decompress(bytes.NewReader(src), deCompressedData); err != nil {
		return nil, err
	}
	return deCompressedData.Bytes(), nil
}

// compress uses zlib to compress a byte slice to a corresponding level
func compress(src []byte, dest io.Writer, level int) error {
	compressor, err := zlib.NewWriterLevel(dest, level)
	if err != nil {
		return err
	}
	if _, err = compressor.Write(src); err != nil {
		log.Debugf("error writing data: %v", err)
		compressor.Close()
		return err
	}
	return compressor.Close()
}

// decompress uses zlib to decompress an io.Reader
func decompress(src io.Reader, dest io.Writer) error {
	decompressor, err := NewReader(src)
	if err != nil {
		return err
	}
	defer decompressor.Close()
	if _, err := io.Copy(dest, decompressor); err != nil {
		log.Debugf("error copying data: %v", err)
		return err
	}
	return nil
}
