package main

import (
	"os"

	"github.com/ArcetriAdaptiveOptics/go-shsworks/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
