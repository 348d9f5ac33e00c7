package commands

import (
	"fmt"
	"os/user"
	"time"

	"github.com/spf13/cobra"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/runtime/terminal/export"
	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/wsr"
	"github.com/vertekal/msrsync/pkg/store/rates"
)

func NewWSRCmd(reporter *export.Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wsr",
		Short: "Weekly status report operations",
	}

	cmd.AddCommand(newWeeklyCmd(reporter))
	cmd.AddCommand(newRollupCmd(reporter))

	return cmd
}

type WeeklyCmd struct {
	configPath   string
	settingsPath string
	cfgPath      string
	profile      string
	weekOf       string
	wsrPath      string
	outputPath   string
	preview      bool
	reporter     *export.Reporter
}

func newWeeklyCmd(reporter *export.Reporter) *cobra.Command {
	wc := &WeeklyCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Write the last completed week's hours into the weekly report",
		RunE:  wc.run,
	}

	usr, _ := user.Current()
	defaultCfg := fmt.Sprintf("%s/.timetrack.cfg", usr.HomeDir)

	cmd.Flags().StringVar(&wc.configPath, "config", "", "Path to the app config file")
	cmd.Flags().StringVar(&wc.settingsPath, "settings", "", "Path to the report settings file")
	cmd.Flags().StringVar(&wc.cfgPath, "timetrack-cfg", defaultCfg, "Path to the time tracking credentials file")
	cmd.Flags().StringVar(&wc.profile, "profile", "default", "Credentials profile to use")
	cmd.Flags().StringVar(&wc.weekOf, "week", "", "Update the week containing this date (YYYY-MM-DD, default is the last completed week)")
	cmd.Flags().StringVar(&wc.wsrPath, "wsr", "", "Weekly report workbook to update (default is the newest completed one)")
	cmd.Flags().StringVar(&wc.outputPath, "output", "", "Where to save the updated workbook")
	cmd.Flags().BoolVar(&wc.preview, "preview", false, "Fetch hours and resolve the week column without writing")

	return cmd
}

func (wc *WeeklyCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	week := domain.LastCompletedWeek(time.Now())
	if wc.weekOf != "" {
		day, err := time.Parse("2006-01-02", wc.weekOf)
		if err != nil {
			return fmt.Errorf("invalid --week value %q, expected YYYY-MM-DD", wc.weekOf)
		}
		week = domain.WeekContaining(day)
	}

	app, err := config.LoadApp(wc.configPath)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(wc.settingsPath)
	if err != nil {
		return err
	}
	layout, err := wsr.LayoutFromSettings(settings.WSR)
	if err != nil {
		return err
	}
	// Weekly runs always fetch from the API: a CSV export's window cannot
	// be checked against the week being billed.
	source, err := newSource(ctx, "", wc.cfgPath, wc.profile, app.Users)
	if err != nil {
		return err
	}

	finder := wsr.NewFinder(app.WSR, settings.WSR)
	service := wsr.NewService(layout, source, rates.NewStore(app.Rates, app.DefaultRate), app.Company, finder)

	path := wc.wsrPath
	if path == "" {
		path, err = finder.FindLatest(time.Now())
		if err != nil {
			return err
		}
	}

	update, err := service.Weekly(ctx, wsr.WeeklyRequest{
		Week:       week,
		Path:       path,
		OutputPath: wc.outputPath,
		DryRun:     wc.preview,
	})
	if err != nil {
		return err
	}

	return wc.reporter.HandleWeekly(update)
}

type RollupCmd struct {
	configPath   string
	settingsPath string
	wsrPath      string
	outputPath   string
	preview      bool
	reporter     *export.Reporter
}

func newRollupCmd(reporter *export.Reporter) *cobra.Command {
	rc := &RollupCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "rollup <period>",
		Short: "Sum the month's actual weeks into the weekly report's billing ledger",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Path to the app config file")
	cmd.Flags().StringVar(&rc.settingsPath, "settings", "", "Path to the report settings file")
	cmd.Flags().StringVar(&rc.wsrPath, "wsr", "", "Weekly report workbook to roll up (default is the newest completed one)")
	cmd.Flags().StringVar(&rc.outputPath, "output", "", "Where to save the workbook (default is in place)")
	cmd.Flags().BoolVar(&rc.preview, "preview", false, "Compute the ledger rows without writing")

	return cmd
}

func (rc *RollupCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	period, err := domain.ParsePeriod(args[0])
	if err != nil {
		return err
	}

	app, err := config.LoadApp(rc.configPath)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(rc.settingsPath)
	if err != nil {
		return err
	}
	layout, err := wsr.LayoutFromSettings(settings.WSR)
	if err != nil {
		return err
	}

	finder := wsr.NewFinder(app.WSR, settings.WSR)
	// Rollups read hours already written to the workbook and never fetch.
	service := wsr.NewService(layout, nil, rates.NewStore(app.Rates, app.DefaultRate), app.Company, finder)

	path := rc.wsrPath
	if path == "" {
		path, err = finder.FindLatest(time.Now())
		if err != nil {
			return err
		}
	}

	result, err := service.Rollup(ctx, wsr.RollupRequest{
		Period:     period,
		Path:       path,
		OutputPath: rc.outputPath,
		DryRun:     rc.preview,
	})
	if err != nil {
		return err
	}

	return rc.reporter.HandleRollup(result)
}
