package main

import (
	"os"

	"github.com/Mustafa6066/Osool-sub002/cmd/osoold/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
