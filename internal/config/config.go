package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ThemeConfig holds color overrides for one display mode.
type ThemeConfig struct {
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// ThemesConfig holds overrides for the light and dark display modes.
type ThemesConfig struct {
	Light ThemeConfig `mapstructure:"light"`
	Dark  ThemeConfig `mapstructure:"dark"`
}

// LogConfig controls the session log.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Config holds the application configuration.
type Config struct {
	DarkMode bool         `mapstructure:"dark_mode"`
	MaxWidth int          `mapstructure:"max_width"`
	Editor   string       `mapstructure:"editor"`
	Log      LogConfig    `mapstructure:"log"`
	Theme    ThemesConfig `mapstructure:"theme"`
}

// DefaultConfigDir returns the default configuration directory (~/.diarypad/).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".diarypad")
	}
	return filepath.Join(home, ".diarypad")
}

// Load reads configuration from .env, file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	// .env only seeds the environment; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()

	// Defaults
	v.SetDefault("dark_mode", false)
	v.SetDefault("max_width", 0)
	v.SetDefault("editor", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	for _, mode := range []string{"light", "dark"} {
		for _, key := range []string{"primary", "secondary", "accent", "muted", "danger", "background", "markdown_style"} {
			v.SetDefault("theme."+mode+"."+key, "")
		}
	}

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "diarypad"))
		}
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DIARYPAD_DARK_MODE, DIARYPAD_LOG_FILE, etc.
	v.SetEnvPrefix("DIARYPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
