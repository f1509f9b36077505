package utils

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/minio/highwayhash"
)

// HashAlgorithms lists the names accepted by NewHash.
var HashAlgorithms = []string{"xxhash", "highway"}

var highwayKey, _ = hex.DecodeString("1553c5383fb0b86578c3310da665b4f6e0521acf22eb58a99532ffed02a6b115")

// NewHash returns a streaming hash for the named algorithm.
func NewHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "xxhash":
		return xxhash.New(), nil
	case "highway":
		h, err := highwayhash.New(highwayKey)
		if err != nil {
			return nil, fmt.Errorf("could not create highwayhash: %w", err)
		}
		return h, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
	}
}

// HashingReader feeds everything read through it into a hash.
type HashingReader struct {
	r io.Reader
	h hash.Hash
}

// NewHashingReader wraps r so that every byte read is also hashed with algorithm.
func NewHashingReader(r io.Reader, algorithm string) (*HashingReader, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return nil, err
	}
	return &HashingReader{r: io.TeeReader(r, h), h: h}, nil
}

func (hr *HashingReader) Read(p []byte) (int, error) {
	return hr.r.Read(p)
}

// Sum returns the hex encoded hash of the bytes read so far.
func (hr *HashingReader) Sum() string {
	return hex.EncodeToString(hr.h.Sum(nil))
}
