package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Paths locates one report family on disk. CompletedDir holds the archived
// per-period folders; TemplatesDir holds blank report templates.
type Paths struct {
	BaseDir      string `mapstructure:"base_dir"`
	TemplatesDir string `mapstructure:"templates_dir"`
	CompletedDir string `mapstructure:"completed_dir"`
}

func (p Paths) withDefaults() Paths {
	if p.TemplatesDir == "" {
		p.TemplatesDir = filepath.Join(p.BaseDir, "templates")
	}
	if p.CompletedDir == "" {
		p.CompletedDir = filepath.Join(p.BaseDir, "completed")
	}
	return p
}

// App is the application level configuration shared by the CLI and the web
// server.
type App struct {
	MSR           Paths              `mapstructure:"msr"`
	WSR           Paths              `mapstructure:"wsr"`
	Reports       []string           `mapstructure:"reports"`
	Company       string             `mapstructure:"company"`
	Rates         map[string]float64 `mapstructure:"rates"`
	DefaultRate   float64            `mapstructure:"default_rate"`
	Users         map[string]string  `mapstructure:"users"`
	ExcludedCodes []string           `mapstructure:"excluded_codes"`
}

// DefaultApp returns the configuration used when no config file is given.
func DefaultApp() App {
	home, _ := os.UserHomeDir()
	return App{
		MSR:     Paths{BaseDir: filepath.Join(home, "Documents", "MSRs")},
		WSR:     Paths{BaseDir: filepath.Join(home, "Documents", "WSR")},
		Reports: []string{"TO1", "TO4", "TO6", "TO8", "EMMETT"},
		Company: "Vertekal",
		Rates: map[string]float64{
			"David Thompson": 211.15,
			"Nathan Ruf":     187.41,
			"Philip Yang":    211.15,
		},
		ExcludedCodes: []string{"PTO", "Holiday"},
	}
}

// LoadApp reads the application config file, filling anything the file does
// not set from the defaults. An empty path returns the defaults unchanged.
func LoadApp(path string) (App, error) {
	cfg := DefaultApp()
	if path == "" {
		cfg.MSR = cfg.MSR.withDefaults()
		cfg.WSR = cfg.WSR.withDefaults()
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return App{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return App{}, fmt.Errorf("failed to parse app config: %w", err)
	}

	cfg.MSR = cfg.MSR.withDefaults()
	cfg.WSR = cfg.WSR.withDefaults()
	return cfg, nil
}
