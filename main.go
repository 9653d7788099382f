package main

import (
	"os"

	"github.com/abhisek/conjugo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
