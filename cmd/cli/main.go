package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/casegen/cmd/cli/casecmd"
	"github.com/myrjola/casegen/cmd/cli/catalogcmd"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
	rootCmd.AddGroup(casecmd.Group)
	rootCmd.AddCommand(casecmd.Generate)
	rootCmd.AddCommand(casecmd.List)
	rootCmd.AddGroup(catalogcmd.Group)
	rootCmd.AddCommand(catalogcmd.List)
}

var rootCmd = &cobra.Command{
	Use:  "casegen-cli",
	Long: `Command line utilities for the case generation service`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
