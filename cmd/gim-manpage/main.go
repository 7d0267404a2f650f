package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/gim/cmd/gim"
	"github.com/arthur-debert/gim/internal/version"
)

func main() {
	rootCmd := gim.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "GIM",
		Section: "1",
		Source:  "gim " + version.Version,
		Manual:  "gim manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
