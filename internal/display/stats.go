package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RunStats counts what a run touched. Not safe for concurrent use; callers
// merge per-repository stats with Add.
type RunStats struct {
	Repos        int
	StaleRepos   int
	BranchErrors int
	Branches     int
	CommitsRead  int
	CommitsKept  int
	NotFound     int
	CommitErrors int
}

func (s *RunStats) Add(o RunStats) {
	s.Repos += o.Repos
	s.StaleRepos += o.StaleRepos
	s.BranchErrors += o.BranchErrors
	s.Branches += o.Branches
	s.CommitsRead += o.CommitsRead
	s.CommitsKept += o.CommitsKept
	s.NotFound += o.NotFound
	s.CommitErrors += o.CommitErrors
}

func (s RunStats) Print(w io.Writer) {
	headerColor.Fprintln(w, "RUN STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "%s %d\n", color.WhiteString("Repositories listed:"), s.Repos)
	fmt.Fprintf(w, "%s %d\n", color.WhiteString("Skipped as stale:"), s.StaleRepos)
	fmt.Fprintf(w, "%s %d\n", color.WhiteString("Branches scanned:"), s.Branches)
	fmt.Fprintf(w, "%s %d/%d\n", color.WhiteString("Commits in month:"), s.CommitsKept, s.CommitsRead)
	if s.BranchErrors > 0 {
		fmt.Fprintf(w, "%s %d\n", color.RedString("Branch listing failures:"), s.BranchErrors)
	}
	if s.NotFound > 0 || s.CommitErrors > 0 {
		fmt.Fprintf(w, "%s %d not found, %d failed\n", color.RedString("Commit fetches skipped:"), s.NotFound, s.CommitErrors)
	}
}
