package main

import (
	"github.com/pfrederiksen/plaintext-sports/internal/cli"
)

// version is set via -ldflags at build time
var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
