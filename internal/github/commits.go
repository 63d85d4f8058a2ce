package github

import (
	"context"
	"fmt"

	"github.com/gnomegl/commitmonth/internal/logger"
	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
)

// FetchAuthorCommits lists the commits by author reachable from branch, newest
// first. Pages are read until one is empty or cfg.MaxCommitPages is reached.
// No since bound is sent: GitHub applies it to the committer date, while
// callers select by author date.
func FetchAuthorCommits(ctx context.Context, client *github.Client, owner, repo, author, branch string, cfg *Config) ([]*github.RepositoryCommit, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var allCommits []*github.RepositoryCommit
	opt := &github.CommitsListOptions{
		SHA:         branch,
		Author:      author,
		ListOptions: github.ListOptions{Page: 1, PerPage: cfg.PerPage},
	}

	for {
		commits, resp, err := client.Repositories.ListCommits(ctx, owner, repo, opt)
		if err != nil {
			if isNotFound(resp) {
				return nil, fmt.Errorf("commits of %s/%s@%s: %w", owner, repo, branch, ErrNotFound)
			}
			return nil, fmt.Errorf("error fetching commits for %s/%s@%s: %w", owner, repo, branch, err)
		}
		if len(commits) == 0 {
			break
		}
		allCommits = append(allCommits, commits...)

		if cfg.MaxCommitPages > 0 && opt.Page >= cfg.MaxCommitPages {
			logger.Warn("Commit page cap reached, older commits not read",
				zap.String("repo", repo),
				zap.String("branch", branch),
				zap.Int("pages", opt.Page))
			break
		}
		opt.Page++
	}

	logger.Debug("Fetched commits",
		zap.String("repo", repo),
		zap.String("branch", branch),
		zap.Int("count", len(allCommits)))
	return allCommits, nil
}
