package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/gnomegl/commitmonth/internal/config"
	"github.com/gnomegl/commitmonth/internal/display"
	"github.com/gnomegl/commitmonth/internal/github"
	"github.com/gnomegl/commitmonth/internal/logger"
	"github.com/gnomegl/commitmonth/internal/models"
	"github.com/gnomegl/commitmonth/internal/storage"
	"github.com/gnomegl/commitmonth/internal/utils"
	gh "github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecordStore archives the records of a finished run.
type RecordStore interface {
	SaveRecords(ctx context.Context, report storage.Report, records []models.CommitRecord) error
}

// Result is what a completed run produced.
type Result struct {
	CSVPath string
	CSVRows int
	Groups  *models.DateGroups
	Stats   display.RunStats
}

type Orchestrator struct {
	client *gh.Client
	config *config.AppConfig
	ghCfg  *github.Config
	now    time.Time
	month  utils.Month
	out    io.Writer
	store  RecordStore
}

// NewOrchestrator prepares a run against cfg.Org. now is the run's reference
// time: it fixes both the reporting month and the recency cutoff.
func NewOrchestrator(client *gh.Client, cfg *config.AppConfig, now time.Time, out io.Writer) *Orchestrator {
	ghCfg := github.DefaultConfig()
	ghCfg.MaxCommitPages = cfg.MaxCommitPages

	return &Orchestrator{
		client: client,
		config: cfg,
		ghCfg:  ghCfg,
		now:    now,
		month:  utils.NewMonth(now),
		out:    &lockedWriter{w: out},
	}
}

// WithStore archives the run's records in store once scanning finishes.
func (o *Orchestrator) WithStore(store RecordStore) *Orchestrator {
	o.store = store
	return o
}

type repoResult struct {
	records []models.CommitRecord
	stats   display.RunStats
}

func (o *Orchestrator) Run(ctx context.Context) (result *Result, err error) {
	logger.Info("Starting scan",
		zap.String("org", o.config.Org),
		zap.String("author", o.config.Username),
		zap.String("month", o.month.String()),
		zap.Int("workers", o.config.Workers))

	repos, err := github.FetchOrgRepos(ctx, o.client, o.config.Org, o.ghCfg)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(o.config.OutputDir, o.month.Filename())
	csvw, err := display.CreateCSV(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := csvw.Close(); cerr != nil && err == nil {
			result, err = nil, fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	result = &Result{CSVPath: path, Groups: models.NewDateGroups()}

	result.Stats.Repos = len(repos)
	active := make([]*gh.Repository, 0, len(repos))
	for _, repo := range repos {
		if !utils.UpdatedWithin(repo.GetUpdatedAt().Time, o.now, o.config.RecentDays) {
			display.SkipStale(o.out, repo.GetName(), o.config.RecentDays)
			result.Stats.StaleRepos++
			continue
		}
		active = append(active, repo)
	}

	writeRecord := func(rec models.CommitRecord) error {
		if err := csvw.Write(rec); err != nil {
			return err
		}
		result.Groups.Add(rec)
		return nil
	}
	emitter := newOrderedEmitter(func(res repoResult) error {
		for _, rec := range res.records {
			if err := writeRecord(rec); err != nil {
				return err
			}
		}
		result.Stats.Add(res.stats)
		return nil
	})

	// a single worker writes each match as it is found; several workers
	// buffer per repository so the emitter can keep listing order
	streaming := o.config.Workers == 1

	bar := display.NewProgress(len(active), o.config.Progress)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.config.Workers)
	for i, repo := range active {
		i, repo := i, repo
		g.Go(func() error {
			var res repoResult
			keep := func(rec models.CommitRecord) error {
				res.records = append(res.records, rec)
				return nil
			}
			if streaming {
				keep = writeRecord
			}

			stats, err := o.scanRepo(gctx, repo, keep)
			if err != nil {
				return err
			}
			res.stats = stats
			bar.Add(1)
			return emitter.deliver(i, res)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	bar.Finish()
	result.CSVRows = csvw.Rows()

	display.Summary(o.out, result.Groups)
	result.Stats.Print(o.out)

	if o.store != nil {
		report := storage.Report{
			Org:       o.config.Org,
			Author:    o.config.Username,
			Month:     o.month.String(),
			FetchedAt: o.now,
		}
		if err := o.store.SaveRecords(ctx, report, result.Groups.All()); err != nil {
			return nil, fmt.Errorf("failed to archive records: %w", err)
		}
	}

	return result, nil
}

// scanRepo reads every branch of repo and passes the author's commits that
// fall in the reporting month to keep, in branch order.
func (o *Orchestrator) scanRepo(ctx context.Context, repo *gh.Repository, keep func(models.CommitRecord) error) (display.RunStats, error) {
	var stats display.RunStats
	name := repo.GetName()

	branches, err := github.FetchBranches(ctx, o.client, o.config.Org, name, o.ghCfg)
	if err != nil {
		if o.config.BranchErrors == models.PolicySkip && ctx.Err() == nil {
			display.BranchError(o.out, name, err)
			logger.Warn("Branch listing failed", zap.String("repo", name), zap.Error(err))
			stats.BranchErrors++
			return stats, nil
		}
		return stats, err
	}

	for _, branch := range branches {
		branchName := branch.GetName()
		display.Fetching(o.out, name, branchName)
		stats.Branches++

		commits, err := github.FetchAuthorCommits(ctx, o.client, o.config.Org, name, o.config.Username, branchName, o.ghCfg)
		if err != nil {
			if o.config.CommitErrors == models.PolicyFatal || ctx.Err() != nil {
				return stats, err
			}
			if errors.Is(err, github.ErrNotFound) {
				display.SkipNotFound(o.out, name, branchName)
				stats.NotFound++
			} else {
				display.CommitError(o.out, name, branchName, err)
				stats.CommitErrors++
			}
			logger.Warn("Commit fetch skipped",
				zap.String("repo", name),
				zap.String("branch", branchName),
				zap.Error(err))
			continue
		}

		stats.CommitsRead += len(commits)
		for _, commit := range commits {
			authored := commit.GetCommit().GetAuthor().GetDate().Time
			if !o.month.Contains(authored) {
				continue
			}
			err := keep(models.CommitRecord{
				Date:    utils.CalendarDate(authored),
				Repo:    name,
				Branch:  branchName,
				Message: commit.GetCommit().GetMessage(),
				URL:     commit.GetHTMLURL(),
			})
			if err != nil {
				return stats, err
			}
			stats.CommitsKept++
		}
	}

	return stats, nil
}

// orderedEmitter hands results to emit in index order, whatever order they
// are delivered in.
type orderedEmitter struct {
	mu      sync.Mutex
	next    int
	pending map[int]repoResult
	emit    func(repoResult) error
}

func newOrderedEmitter(emit func(repoResult) error) *orderedEmitter {
	return &orderedEmitter{pending: make(map[int]repoResult), emit: emit}
}

func (e *orderedEmitter) deliver(i int, res repoResult) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending[i] = res
	for {
		next, ok := e.pending[e.next]
		if !ok {
			return nil
		}
		delete(e.pending, e.next)
		e.next++
		if err := e.emit(next); err != nil {
			return err
		}
	}
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
