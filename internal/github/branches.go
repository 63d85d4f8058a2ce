package github

import (
	"context"
	"fmt"

	"github.com/gnomegl/commitmonth/internal/logger"
	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
)

func FetchBranches(ctx context.Context, client *github.Client, owner, repo string, cfg *Config) ([]*github.Branch, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var allBranches []*github.Branch
	opt := &github.BranchListOptions{
		ListOptions: github.ListOptions{Page: 1, PerPage: cfg.PerPage},
	}

	for {
		branches, resp, err := client.Repositories.ListBranches(ctx, owner, repo, opt)
		if err != nil {
			if isNotFound(resp) {
				return nil, fmt.Errorf("branches of %s/%s: %w", owner, repo, ErrNotFound)
			}
			return nil, fmt.Errorf("error fetching branches for %s/%s: %w", owner, repo, err)
		}
		if len(branches) == 0 {
			break
		}
		allBranches = append(allBranches, branches...)
		opt.Page++
	}

	logger.Debug("Fetched branches", zap.String("repo", repo), zap.Int("count", len(allBranches)))
	return allBranches, nil
}
