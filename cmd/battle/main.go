package main

import (
	"os"

	"github.com/harunoguchi/trader-battle/cmd/battle/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
