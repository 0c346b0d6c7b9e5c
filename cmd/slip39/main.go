package main

import (
	"os"

	"github.com/shamirbackup/go-slip39/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
