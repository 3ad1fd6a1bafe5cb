package main

import (
	"context"
	"os"

	"github.com/secmon-lab/adtool/pkg/cli"
)

var version = "dev"

func main() {
	err := cli.Run(context.Background(), os.Args, version)
	os.Exit(cli.ExitCode(err))
}
