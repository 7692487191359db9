package main

import (
	"os"

	"github.com/Kirankkt/Construction-Scheduler-2/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
