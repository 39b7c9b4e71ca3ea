package main

import (
	"os"

	"github.com/tscore-lang/tscore/cmd/tscheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
