package main

import (
	"fmt"
	"os"

	"github.com/Knodis-c/erdtree-3-1/cmd/erdtree/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
