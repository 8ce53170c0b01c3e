package main

import (
	"os"

	"github.com/JepStar990/plainapi/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
