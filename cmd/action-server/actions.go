package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newActionsCmd(flags *serverFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "Print the actions the server would register",
		Long:  `Loads the actions package and prints the same JSON list GET /actions returns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			eng, _, err := newEngine(cfg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(eng.Actions())
		},
	}
}
