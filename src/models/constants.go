package models

// READ_BUFFER_SIZE is the buffer used when reading the compressed input
const READ_BUFFER_SIZE = 1024 * 64

// Defaults for the command line (can be changed with --hash and --max-size)
var (
	DEFAULT_HASH           = "xxhash"
	DEFAULT_MAX_SIZE int64 = 0
	DEFAULT_LOGLEVEL       = "warn"
)

// EXIT_FAILURE is the process status for any failure
const EXIT_FAILURE = 1
