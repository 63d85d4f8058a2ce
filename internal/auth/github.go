package auth

import (
	"context"
	"fmt"

	"github.com/gnomegl/commitmonth/internal/config"
	"github.com/gnomegl/commitmonth/internal/github"
	gh "github.com/google/go-github/v57/github"
)

// SetupGitHubClient builds the API client for cfg and, unless told not to,
// checks that the token is accepted before any scanning starts.
func SetupGitHubClient(ctx context.Context, cfg *config.AppConfig) (*gh.Client, error) {
	client, err := github.GetGithubClient(cfg.Token, cfg.APIURL)
	if err != nil {
		return nil, err
	}

	if !cfg.SkipTokenCheck {
		if err := github.ValidateToken(ctx, client); err != nil {
			return nil, fmt.Errorf("token validation failed: %w", err)
		}
	}

	return client, nil
}
