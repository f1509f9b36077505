package cli

import "errors"

var ErrNoInput = errors.New("must specify file: unzlib <input> [output]")
