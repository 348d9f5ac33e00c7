package commands

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
)

type SummaryCmd struct {
	configPath string
	cfgPath    string
	profile    string
	csvPath    string
}

func NewSummaryCmd() *cobra.Command {
	sc := &SummaryCmd{}
	cmd := &cobra.Command{
		Use:   "summary <period>",
		Short: "Print a month's aggregated hours per employee and charge code",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	usr, _ := user.Current()
	defaultCfg := fmt.Sprintf("%s/.timetrack.cfg", usr.HomeDir)

	cmd.Flags().StringVar(&sc.configPath, "config", "", "Path to the app config file")
	cmd.Flags().StringVar(&sc.cfgPath, "timetrack-cfg", defaultCfg, "Path to the time tracking credentials file")
	cmd.Flags().StringVar(&sc.profile, "profile", "default", "Credentials profile to use")
	cmd.Flags().StringVar(&sc.csvPath, "csv", "", "Read hours from a CSV export instead of the API")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	period, err := domain.ParsePeriod(args[0])
	if err != nil {
		return err
	}

	app, err := config.LoadApp(sc.configPath)
	if err != nil {
		return err
	}
	source, err := newSource(ctx, sc.csvPath, sc.cfgPath, sc.profile, app.Users)
	if err != nil {
		return err
	}

	entries, err := source.FetchMonth(ctx, period)
	if err != nil {
		return fmt.Errorf("fetch timesheets for %s: %w", period.Display(), err)
	}
	hours := timesheet.Aggregate(entries, timesheet.Options{ExcludedJobCodes: app.ExcludedCodes})

	return timesheet.WriteSummary(cmd.OutOrStdout(), hours)
}
