package main

import (
	"os"

	"github.com/reoring/jsonassert/internal/cli"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	os.Exit(cli.Execute(version, buildTime, os.Args[1:], os.Stdout, os.Stderr))
}
