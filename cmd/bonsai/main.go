package main

import (
	"fmt"
	"os"

	"github.com/BeckettFrey/Bonsai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bonsai: %v\n", err)
		os.Exit(1)
	}
}
