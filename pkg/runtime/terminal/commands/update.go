package commands

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/runtime/terminal/export"
	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/msr"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
)

type UpdateCmd struct {
	configPath   string
	settingsPath string
	mappingsPath string
	cfgPath      string
	profile      string
	csvPath      string
	files        map[string]string
	reports      []string
	outputDir    string
	preview      bool
	reporter     *export.Reporter
}

func NewUpdateCmd(reporter *export.Reporter) *cobra.Command {
	uc := &UpdateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "update <period>",
		Short: "Copy a month's tracked hours into the monthly subcontract reports",
		Args:  cobra.ExactArgs(1),
		RunE:  uc.run,
	}

	usr, _ := user.Current()
	defaultCfg := fmt.Sprintf("%s/.timetrack.cfg", usr.HomeDir)

	cmd.Flags().StringVar(&uc.configPath, "config", "", "Path to the app config file")
	cmd.Flags().StringVar(&uc.settingsPath, "settings", "", "Path to the report settings file")
	cmd.Flags().StringVar(&uc.mappingsPath, "mappings", "", "Path to the employee charge code mappings file")
	cmd.Flags().StringVar(&uc.cfgPath, "timetrack-cfg", defaultCfg, "Path to the time tracking credentials file")
	cmd.Flags().StringVar(&uc.profile, "profile", "default", "Credentials profile to use")
	cmd.Flags().StringVar(&uc.csvPath, "csv", "", "Read hours from a CSV export instead of the API")
	cmd.Flags().StringToStringVar(&uc.files, "file", nil, "Report file override per id, e.g. TO1=/path/to/report.xlsx")
	cmd.Flags().StringSliceVar(&uc.reports, "reports", nil, "Report ids to update (default is the configured list)")
	cmd.Flags().StringVar(&uc.outputDir, "output-dir", "", "Directory for updated reports")
	cmd.Flags().BoolVar(&uc.preview, "preview", false, "Resolve files and period columns without writing")

	_ = cmd.MarkFlagRequired("mappings")

	return cmd
}

func (uc *UpdateCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	period, err := domain.ParsePeriod(args[0])
	if err != nil {
		return err
	}

	app, err := config.LoadApp(uc.configPath)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(uc.settingsPath)
	if err != nil {
		return err
	}
	mappings, err := config.LoadMappings(uc.mappingsPath)
	if err != nil {
		return err
	}

	registry, err := msr.NewRegistryFromSettings(settings)
	if err != nil {
		return err
	}
	source, err := newSource(ctx, uc.csvPath, uc.cfgPath, uc.profile, app.Users)
	if err != nil {
		return err
	}

	reports := uc.reports
	if len(reports) == 0 {
		reports = app.Reports
	}

	orch := msr.NewOrchestrator(
		registry,
		msr.NewFinder(app.MSR.CompletedDir, app.MSR.TemplatesDir),
		source,
		mappings,
		timesheet.Options{ExcludedJobCodes: app.ExcludedCodes},
	)
	result, err := orch.Run(ctx, msr.RunRequest{
		Period:    period,
		Reports:   reports,
		Files:     uc.files,
		OutputDir: uc.outputDir,
		DryRun:    uc.preview,
	})
	if err != nil {
		return err
	}

	return uc.reporter.HandleRun(result)
}
