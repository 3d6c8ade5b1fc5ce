package main

import (
	"os"

	"github.com/dshills/ghrest/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
