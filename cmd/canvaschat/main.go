// Command canvaschat runs the chat command layer of the page builder: as an
// HTTP/websocket service, a Matrix bot, or an interactive REPL against a
// seeded workspace.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var workspaceFile string

var rootCmd = &cobra.Command{
	Use:           "canvaschat",
	Short:         "Natural-language commands for the canvas page builder",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspaceFile, "workspace", "w", "", "workspace seed file (overrides WORKSPACE_FILE)")
	rootCmd.AddCommand(serveCmd, replCmd, suggestionsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
