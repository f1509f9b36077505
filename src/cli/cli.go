package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/schollz/cli/v2"
	log "github.com/schollz/logger"

	"github.com/schollz/unzlib/src/compress"
	"github.com/schollz/unzlib/src/hexdump"
	"github.com/schollz/unzlib/src/models"
	"github.com/schollz/unzlib/src/utils"
)

// Version is set at build time
var Version string

// Run parses the process arguments and dumps the requested file.
func Run() (err error) {
	return NewApp().Run(os.Args)
}

// NewApp returns the unzlib command line application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "unzlib"
	if Version == "" {
		Version = "v1.0.0-dev"
	}
	app.Version = Version
	app.Usage = "hexdump the contents of a zlib compressed file"
	app.UsageText = "unzlib [options] <input> [output]"
	app.ArgsUsage = "<input> [output]"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Usage: "increase verbosity"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "hash", Usage: "print a checksum of the decompressed data"},
		&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: models.DEFAULT_HASH, Usage: "checksum algorithm (" + strings.Join(utils.HashAlgorithms, ", ") + ")"},
		&cli.Int64Flag{Name: "max-size", Value: models.DEFAULT_MAX_SIZE, Usage: "fail once the decompressed data exceeds this many bytes (0 for no limit)", EnvVars: []string{"UNZLIB_MAX_SIZE"}},
		&cli.BoolFlag{Name: "no-progress", Usage: "do not show a progress bar when writing to a file"},
	}
	app.HideHelp = false
	app.HideVersion = false
	app.Before = func(c *cli.Context) error {
		setDebugLevel(c)
		return nil
	}
	app.Action = dump
	return app
}

func setDebugLevel(c *cli.Context) {
	switch {
	case c.Bool("debug"):
		log.SetLevel("debug")
	case c.Bool("quiet"):
		log.SetLevel("error")
	default:
		log.SetLevel(models.DEFAULT_LOGLEVEL)
	}
}

func dump(c *cli.Context) (err error) {
	if c.Args().Len() == 0 {
		fmt.Fprintf(c.App.ErrWriter, "usage: %s\n", c.App.UsageText)
		return ErrNoInput
	}
	if c.Args().Len() > 2 {
		log.Warnf("ignoring extra arguments: %s", strings.Join(c.Args().Slice()[2:], " "))
	}
	fnameIn := c.Args().Get(0)
	fnameOut := c.Args().Get(1)
	algorithm := c.String("algorithm")
	if c.Bool("hash") {
		if _, err = utils.NewHash(algorithm); err != nil {
			return
		}
	}
	start := time.Now()

	fin, err := os.Open(fnameIn)
	if err != nil {
		return
	}
	defer fin.Close()
	stats := models.DumpStats{
		Input:      fnameIn,
		Output:     fnameOut,
		Compressed: utils.FileSize(fin),
	}
	log.Debugf("reading %s (%s)", fnameIn, utils.ByteCountDecimal(stats.Compressed))

	var in io.Reader = fin
	var bar *utils.ProgressReader
	if fnameOut != "" && !c.Bool("no-progress") && utils.IsTerminal(os.Stderr) {
		bar = utils.NewProgressReader(fin, stats.Compressed, "Decompressing", os.Stderr)
		in = bar
	}
	br := bufio.NewReaderSize(in, models.READ_BUFFER_SIZE)
	if header, _ := br.Peek(2); !compress.IsZlib(header) {
		log.Warnf("%s does not start with a zlib header", fnameIn)
	}

	// the header is checked before the output file is truncated
	zr, err := compress.NewReader(br)
	if err != nil {
		if bar != nil {
			bar.Finish(err)
		}
		err = fmt.Errorf("%s: %w", fnameIn, err)
		return
	}
	defer zr.Close()

	var out io.Writer = c.App.Writer
	if fnameOut == "" {
		stats.Output = "stdout"
	} else {
		if utils.Exists(fnameOut) {
			log.Debugf("truncating existing %s", fnameOut)
		}
		var fout *os.File
		fout, err = os.OpenFile(fnameOut, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer func() {
			if cerr := fout.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = fout
	}

	src := compress.LimitReader(zr, c.Int64("max-size"))
	var hr *utils.HashingReader
	if c.Bool("hash") {
		if hr, err = utils.NewHashingReader(src, algorithm); err != nil {
			return
		}
		src = hr
	}

	d := hexdump.New(src, out)
	err = d.Run()
	if bar != nil {
		bar.Finish(err)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", fnameIn, err)
		return
	}

	stats.Decompressed = d.Bytes()
	stats.Lines = d.Lines()
	stats.Duration = time.Since(start)
	if hr != nil {
		stats.Checksum = hr.Sum()
		fmt.Fprintf(c.App.ErrWriter, "%s  %s (%s)\n", stats.Checksum, fnameIn, algorithm)
	}
	log.Debugf("%s -> %s: wrote %d lines for %s of decompressed data in %s",
		stats.Input, stats.Output, stats.Lines, utils.ByteCountDecimal(stats.Decompressed), stats.Duration)
	return
}
