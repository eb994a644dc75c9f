package main

import (
	"os"

	"github.com/gtfunds/calculos/cmd/gtcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
