package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates config.toml from the embedded template when missing, then opens durable storage so
// its migrations run.
//
// --api-url rewrites api.base_url in the config file and --reset forgets everything in durable storage.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("using existing config file", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
		}
		if !r.fixedConfig {
			config, err := shared.LoadConfig(configPath)
			if err != nil {
				return err
			}
			config.ApplyEnv()
			r.config = config
		}
	}

	if baseURL := strings.TrimSpace(cmd.String("api-url")); baseURL != "" {
		if err := r.saveBaseURL(configPath, baseURL); err != nil {
			return err
		}
	}

	r.logger.Info("initializing storage", "path", r.config.Storage.Path)
	local, err := r.localStorage()
	if err != nil {
		return err
	}

	if cmd.Bool("reset") {
		if err := local.Clear(); err != nil {
			return err
		}
		r.logger.Info("cleared local storage", "path", r.config.Storage.Path)
	}

	r.writePlainHeader("MoodShift setup")
	r.writePlain("✓ Configuration: %s\n", configPath)
	r.writePlain("✓ Storage: %s\n", r.config.Storage.Path)
	r.writePlain("  Backend: %s\n", r.config.API.BaseURL)
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'moodshift auth login' to connect your Spotify account\n")
	r.writePlain("2. Run 'moodshift journal \"how your day went\"' or 'moodshift tui'\n")
	return nil
}

// saveBaseURL persists baseURL to the config file at path, leaving environment overrides out of it.
func (r *Runner) saveBaseURL(path, baseURL string) error {
	config, err := shared.LoadConfig(path)
	if err != nil {
		return err
	}

	config.API.BaseURL = strings.TrimRight(baseURL, "/")
	if err := config.Validate(); err != nil {
		return err
	}
	if err := shared.SaveConfig(path, config); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.config.API.BaseURL = config.API.BaseURL
	r.logger.Info("saved backend URL", "path", path, "base_url", config.API.BaseURL)
	return nil
}
