package main

import (
	"os"

	"cosmossdk.io/log"

	"github.com/openalpha/lob-core/cmd/lobctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		log.NewLogger(os.Stderr).Error("lobctl failed", "err", err)
		os.Exit(1)
	}
}
