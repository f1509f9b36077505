package compress

import "errors"

var ErrInvalidHeader = errors.New("invalid zlib header")
var ErrTooLarge = errors.New("decompressed data exceeds size limit")
