package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gnomegl/commitmonth/internal/models"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

var (
	ErrMissingSetting = errors.New("missing required setting")
	ErrInvalidSetting = errors.New("invalid setting")
)

type AppConfig struct {
	Token          string
	Username       string
	Org            string
	APIURL         string
	OutputDir      string
	RecentDays     int
	Workers        int
	BranchErrors   models.ErrorPolicy
	CommitErrors   models.ErrorPolicy
	MaxCommitPages int
	LogLevel       string
	DatabaseURL    string
	Progress       bool
	SkipTokenCheck bool
}

// Load reads envFile, if it exists, and the process environment. The
// environment wins over the file. The result is not validated.
func Load(envFile string) (*AppConfig, error) {
	v := viper.New()
	v.SetDefault("GITHUB_API_URL", "https://api.github.com/")
	v.SetDefault("OUTPUT_DIR", ".")
	v.SetDefault("RECENT_DAYS", 30)
	v.SetDefault("WORKERS", 1)
	v.SetDefault("BRANCH_ERRORS", string(models.PolicyFatal))
	v.SetDefault("COMMIT_ERRORS", string(models.PolicySkip))
	v.SetDefault("MAX_COMMIT_PAGES", 0)
	v.SetDefault("LOG_LEVEL", "warn")
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
		}
	}

	return &AppConfig{
		Token:          v.GetString("GITHUB_TOKEN"),
		Username:       v.GetString("USERNAME"),
		Org:            v.GetString("ORG_NAME"),
		APIURL:         v.GetString("GITHUB_API_URL"),
		OutputDir:      v.GetString("OUTPUT_DIR"),
		RecentDays:     v.GetInt("RECENT_DAYS"),
		Workers:        v.GetInt("WORKERS"),
		BranchErrors:   models.ErrorPolicy(v.GetString("BRANCH_ERRORS")),
		CommitErrors:   models.ErrorPolicy(v.GetString("COMMIT_ERRORS")),
		MaxCommitPages: v.GetInt("MAX_COMMIT_PAGES"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
	}, nil
}

// ParseConfig loads the env file named by --env-file, lets explicitly set
// flags override it and validates the result.
func ParseConfig(c *cli.Context) (*AppConfig, error) {
	cfg, err := Load(c.String("env-file"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("token") {
		cfg.Token = c.String("token")
	}
	if c.IsSet("user") {
		cfg.Username = c.String("user")
	}
	if c.IsSet("org") {
		cfg.Org = c.String("org")
	}
	if c.IsSet("api-url") {
		cfg.APIURL = c.String("api-url")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("recent-days") {
		cfg.RecentDays = c.Int("recent-days")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("branch-errors") {
		cfg.BranchErrors = models.ErrorPolicy(c.String("branch-errors"))
	}
	if c.IsSet("commit-errors") {
		cfg.CommitErrors = models.ErrorPolicy(c.String("commit-errors"))
	}
	if c.IsSet("max-commit-pages") {
		cfg.MaxCommitPages = c.Int("max-commit-pages")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("database-url") {
		cfg.DatabaseURL = c.String("database-url")
	}
	cfg.Progress = c.Bool("progress")
	cfg.SkipTokenCheck = c.Bool("skip-token-check")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and normalizes the error policies.
func (c *AppConfig) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("%w: GITHUB_TOKEN", ErrMissingSetting)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: USERNAME", ErrMissingSetting)
	}
	if c.Org == "" {
		return fmt.Errorf("%w: ORG_NAME", ErrMissingSetting)
	}
	if c.RecentDays < 0 {
		return fmt.Errorf("%w: RECENT_DAYS must not be negative, got %d", ErrInvalidSetting, c.RecentDays)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: WORKERS must be at least 1, got %d", ErrInvalidSetting, c.Workers)
	}
	if c.MaxCommitPages < 0 {
		return fmt.Errorf("%w: MAX_COMMIT_PAGES must not be negative, got %d", ErrInvalidSetting, c.MaxCommitPages)
	}

	var err error
	if c.BranchErrors, err = models.ParseErrorPolicy(string(c.BranchErrors)); err != nil {
		return fmt.Errorf("%w: BRANCH_ERRORS: %v", ErrInvalidSetting, err)
	}
	if c.CommitErrors, err = models.ParseErrorPolicy(string(c.CommitErrors)); err != nil {
		return fmt.Errorf("%w: COMMIT_ERRORS: %v", ErrInvalidSetting, err)
	}
	return nil
}
