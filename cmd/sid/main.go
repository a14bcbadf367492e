package main

import (
	"os"

	"sid-client/cmd/sid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
