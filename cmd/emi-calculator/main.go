package main

import (
	"os"

	"github.com/iwvelando/emi-calculator/cmd/emi-calculator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
