package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the calq application
var rootCmd = &cobra.Command{
	Use:   "calq",
	Short: "Answer natural-language questions about your calendar",
	Long: `calq answers free-text questions about calendar events: overlapping
meetings, free slots, agendas, who you are meeting, and more. Answers come
from a deterministic rule engine, with an optional LLM strategy that falls
back to the rules when it fails.

It can run as:
  - A standalone CLI tool (calq ask "...")
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calq version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
