package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Study-abroad planning assistant",
		Long:          "Runs a three-stage study-abroad planning pipeline (university research, local living guide, timeline and budget) against a text-generation backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), planCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
