package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/copyleftdev/GAUNTLET/internal/problems"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List the registered problems",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range problems.Names() {
			p, _ := problems.Lookup(name)
			fmt.Printf("%-12s dim=%d budget=%d\n", p.Name, p.Dim, p.Budget)
		}
	},
}

func init() {
	rootCmd.AddCommand(problemsCmd)
}
