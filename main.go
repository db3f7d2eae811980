package main

import (
	"os"

	"github.com/eslsoft/learnhub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
