package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var suggestionsFormat string

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Print the example command menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := setup(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		s := rt.sessions.Suggestions()
		out := cmd.OutOrStdout()
		switch suggestionsFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		case "yaml":
			enc := yaml.NewEncoder(out)
			defer enc.Close()
			return enc.Encode(s)
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", suggestionsFormat)
		}
	},
}

func init() {
	suggestionsCmd.Flags().StringVarP(&suggestionsFormat, "format", "f", "yaml", "output format: json or yaml")
}
