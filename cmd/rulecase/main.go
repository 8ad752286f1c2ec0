package main

import (
	"os"

	"github.com/branchwork/rulecase/cmd/rulecase/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
