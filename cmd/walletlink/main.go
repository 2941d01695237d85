package main

import (
	"os"

	"walletlink/cmd/walletlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
