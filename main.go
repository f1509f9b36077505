package main

import (
	"fmt"
	"os"

	"github.com/schollz/unzlib/src/cli"
	"github.com/schollz/unzlib/src/models"
)

func main() {
	if err := cli.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(models.EXIT_FAILURE)
	}
}
