package main

import (
	"os"

	"github.com/CrisisTextLine/multicore/cmd/multicore/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
