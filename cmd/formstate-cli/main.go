package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-formstate/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "formstate: %v\n", err)
		os.Exit(2)
	}
	if err := newRootCommand(cfg, os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "formstate: %v\n", err)
		os.Exit(1)
	}
}
