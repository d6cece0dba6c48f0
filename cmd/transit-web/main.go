package main

import (
	"os"

	"github.com/Shreyas191/nyc-transit-hub/internal/web/transit_web"
)

func main() {
	os.Exit(transit_web.Main(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
