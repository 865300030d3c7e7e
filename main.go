package main

import (
	"fmt"
	"os"

	"bid-reconciler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bid-reconciler: %v\n", err)
		os.Exit(1)
	}
}
