package main

import (
	"os"

	"github.com/rpgo/prprint/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
