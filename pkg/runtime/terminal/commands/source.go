package commands

import (
	"context"
	"os"

	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
	"github.com/vertekal/msrsync/pkg/store/timetrack"
)

// tokenEnv overrides the configured API token when set, so credentials can
// stay out of the checked-in cfg file.
const tokenEnv = "TIMETRACK_TOKEN"

// newSource builds the timesheet source a command reads from: a CSV export
// when one is given, the time tracking API otherwise.
func newSource(ctx context.Context, csvPath, cfgPath, profile string, users map[string]string) (timesheet.Source, error) {
	if csvPath != "" {
		return timesheet.NewCSVSource(csvPath), nil
	}

	registry, err := config.NewAPIRegistry(cfgPath)
	if err != nil {
		return nil, err
	}
	apiCfg, err := registry.GetAPI(ctx, profile)
	if err != nil {
		return nil, err
	}

	token := apiCfg.Token
	if env := os.Getenv(tokenEnv); env != "" {
		token = env
	}

	client := timetrack.NewClient(timetrack.Options{
		BaseURL: apiCfg.BaseURL,
		Token:   token,
		Users:   users,
	})
	return timesheet.NewAPISource(client), nil
}
