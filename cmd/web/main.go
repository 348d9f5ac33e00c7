package main

import (
	"fmt"
	"net"
	"os"
	"os/user"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vertekal/msrsync/pkg/server"
	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/msr"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
	"github.com/vertekal/msrsync/pkg/store/timetrack"
)

var (
	configPath   string
	settingsPath string
	mappingsPath string
	cfgPath      string
	profile      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the report update web server",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultCfg := fmt.Sprintf("%s/.timetrack.cfg", usr.HomeDir)

	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to the app config file")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to the report settings file")
	rootCmd.Flags().StringVar(&mappingsPath, "mappings", "", "Path to the employee charge code mappings file")
	rootCmd.Flags().StringVar(&cfgPath, "timetrack-cfg", defaultCfg, "Path to the time tracking credentials file")
	rootCmd.Flags().StringVar(&profile, "profile", "default", "Credentials profile to use")

	_ = rootCmd.MarkFlagRequired("mappings")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	app, err := config.LoadApp(configPath)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	mappings, err := config.LoadMappings(mappingsPath)
	if err != nil {
		return err
	}
	registry, err := msr.NewRegistryFromSettings(settings)
	if err != nil {
		return fmt.Errorf("failed to build report registry: %w", err)
	}

	apiRegistry, err := config.NewAPIRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read time tracking credentials: %w", err)
	}
	apiCfg, err := apiRegistry.GetAPI(cmd.Context(), profile)
	if err != nil {
		return err
	}
	token := apiCfg.Token
	if env := os.Getenv("TIMETRACK_TOKEN"); env != "" {
		token = env
	}

	source := timesheet.NewAPISource(timetrack.NewClient(timetrack.Options{
		BaseURL: apiCfg.BaseURL,
		Token:   token,
		Users:   app.Users,
	}))

	aggOpts := timesheet.Options{ExcludedJobCodes: app.ExcludedCodes}
	orchestrator := msr.NewOrchestrator(
		registry,
		msr.NewFinder(app.MSR.CompletedDir, app.MSR.TemplatesDir),
		source,
		mappings,
		aggOpts,
	)

	logger.Info().Msgf("Serving reports: %v", registry.ListReports())

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Updater:       orchestrator,
			Registry:      registry,
			Source:        source,
			AggregateOpts: aggOpts,
		},
	})

	return webAPI.Start()
}
