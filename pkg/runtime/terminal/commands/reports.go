package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/msr"
)

type ReportsCmd struct {
	settingsPath string
}

func NewReportsCmd() *cobra.Command {
	rc := &ReportsCmd{}
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List the configured report layouts",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.settingsPath, "settings", "", "Path to the report settings file")

	return cmd
}

func (rc *ReportsCmd) run(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(rc.settingsPath)
	if err != nil {
		return err
	}
	registry, err := msr.NewRegistryFromSettings(settings)
	if err != nil {
		return err
	}

	ids := registry.ListReports()
	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reports configured")
		return nil
	}

	for _, id := range ids {
		def, err := registry.Get(id)
		if err != nil {
			return err
		}
		sheets := make([]string, 0, len(def.Sheets))
		for _, s := range def.Sheets {
			sheets = append(sheets, s.Name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, strings.Join(sheets, ", "))
	}

	return nil
}
