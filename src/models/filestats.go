package models

import "time"

// DumpStats summarizes one run of the tool.
type DumpStats struct {
	Input        string
	Output       string
	Compressed   int64
	Decompressed int64
	Lines        int64
	Checksum     string
	Duration     time.Duration
}
