// main is the entry point for the vitalrisk CLI.
package main

import (
	"os"

	"github.com/songwei/vitalrisk/cmd"
	"github.com/songwei/vitalrisk/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("running vitalrisk", err)
		os.Exit(1)
	}
}
