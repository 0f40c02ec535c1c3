package cmd

import "github.com/spf13/cobra"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lobctl version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("lobctl v0.1.0")
		},
	}
}
