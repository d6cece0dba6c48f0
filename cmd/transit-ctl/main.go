package main

import (
	"os"

	"github.com/Shreyas191/nyc-transit-hub/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
