package main

import (
	"fmt"
	"strings"

	"github.com/greenlandlord/epcstats/internal/reporting"
	"github.com/spf13/cobra"
)

const localeCodeWidth = 12

func newLocalesCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the local authorities analyzed by a full run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(*configPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s  %s\n", reporting.PadRight("Code", localeCodeWidth), "Name") //nolint:errcheck
			fmt.Fprintf(w, "%s\n", strings.Repeat("─", localeCodeWidth+20))                 //nolint:errcheck
			for _, l := range cfg.Locales {
				fmt.Fprintf(w, "%s  %s\n", reporting.PadRight(l.Code, localeCodeWidth), l.Name) //nolint:errcheck
			}
			return nil
		},
	}
}
