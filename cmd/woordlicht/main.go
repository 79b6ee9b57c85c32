package main

import (
	"os"

	"github.com/avdmeer/woordlicht/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
