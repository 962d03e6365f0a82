package main

import (
	"os"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
