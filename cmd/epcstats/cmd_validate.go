package main

import (
	"fmt"
	"strings"

	"github.com/greenlandlord/epcstats/internal/projectconfig"
	"github.com/greenlandlord/epcstats/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a project config file against its schema",
		Long: `Validate a project config file against the embedded JSON schema.

PATH defaults to .epcstats.yaml in the working directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := projectconfig.FileName
			if len(args) == 1 {
				path = args[0]
			}

			problems, err := validation.ValidateConfigFile(path)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(w, "✅ %s is valid\n", path) //nolint:errcheck
				return nil
			}
			fmt.Fprintf(w, "❌ %s has %d problem(s):\n", path, len(problems)) //nolint:errcheck
			for _, p := range problems {
				fmt.Fprintf(w, "   %s\n", p) //nolint:errcheck
			}
			return fmt.Errorf("%s failed validation: %s", path, strings.Join(problems, "; "))
		},
	}
}
