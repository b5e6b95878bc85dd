package main

import (
	"os"

	"github.com/efreitasn/tradestore/cmd/tradestore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
