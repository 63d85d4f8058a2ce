package github

import (
	"context"
	"fmt"

	"github.com/gnomegl/commitmonth/internal/logger"
	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
)

// FetchOrgRepos walks the organization's repository pages until one comes back empty.
func FetchOrgRepos(ctx context.Context, client *github.Client, orgName string, cfg *Config) ([]*github.Repository, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var allRepos []*github.Repository
	opt := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{Page: 1, PerPage: cfg.PerPage},
	}

	for {
		logger.Debug("Fetching repositories page", zap.String("org", orgName), zap.Int("page", opt.Page))
		repos, _, err := client.Repositories.ListByOrg(ctx, orgName, opt)
		if err != nil {
			return nil, fmt.Errorf("error fetching repositories for %s: %w", orgName, err)
		}
		if len(repos) == 0 {
			break
		}
		allRepos = append(allRepos, repos...)
		opt.Page++
	}

	logger.Info("Fetched repositories", zap.String("org", orgName), zap.Int("count", len(allRepos)))
	return allRepos, nil
}
