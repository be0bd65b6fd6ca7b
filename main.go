package main

import (
	"os"

	"github.com/kokostudy/koko/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
