package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for settings read from the environment,
// e.g. APISCAFFOLD_PACKAGE_MANAGER.
const EnvPrefix = "APISCAFFOLD"

// Settings holds user defaults for the create command. Command-line flags
// take precedence over every field.
type Settings struct {
	TemplatesDir   string `mapstructure:"templates_dir"`
	PackageManager string `mapstructure:"package_manager"`
	SkipInstall    bool   `mapstructure:"skip_install"`
	SkipGit        bool   `mapstructure:"skip_git"`
	Verbose        bool   `mapstructure:"verbose"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings(paths *Paths) Settings {
	return Settings{
		TemplatesDir:   paths.Templates,
		PackageManager: "npm",
	}
}

// Load reads paths.Config (if present) and APISCAFFOLD_* environment
// variables on top of DefaultSettings. A missing config file is not an error.
func Load(paths *Paths) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings(paths)
	v.SetDefault("templates_dir", defaults.TemplatesDir)
	v.SetDefault("package_manager", defaults.PackageManager)
	v.SetDefault("skip_install", defaults.SkipInstall)
	v.SetDefault("skip_git", defaults.SkipGit)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(paths.Config)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config %s: %w", paths.Config, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &s, nil
}
