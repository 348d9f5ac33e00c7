package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// API holds connection settings for the time tracking service.
type API struct {
	BaseURL string
	Token   string
}

// APIRegistry reads time tracking credentials from an ini profile file,
// usually ~/.timetrack.cfg.
type APIRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetAPI(ctx context.Context, profile string) (*API, error)
}

type apiRegistry struct {
	cfg *ini.File
}

func NewAPIRegistry(path string) (APIRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &apiRegistry{cfg: cfg}, nil
}

func (ar *apiRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range ar.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (ar *apiRegistry) GetAPI(_ context.Context, profile string) (*API, error) {
	section, err := ar.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	baseURL := section.Key("base_url").String()
	token := section.Key("token").String()

	return &API{
		BaseURL: baseURL,
		Token:   token,
	}, nil
}
