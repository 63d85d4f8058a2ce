package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gnomegl/commitmonth/internal/models"
)

const NoCommitsMsg = "No commits found for the current month."

var (
	dateColor   = color.New(color.FgCyan, color.Bold)
	noticeColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
	fetchColor  = color.New(color.FgBlue)
	headerColor = color.New(color.FgGreen, color.Bold)
)

// Summary prints the records grouped by date, dates ascending.
func Summary(w io.Writer, groups *models.DateGroups) {
	if groups == nil || groups.Empty() {
		noticeColor.Fprintln(w, NoCommitsMsg)
		return
	}

	for _, date := range groups.Dates() {
		dateColor.Fprintf(w, "Date: %s\n", date)
		for _, rec := range groups.Records(date) {
			fmt.Fprintf(w, "  Repo: %s, Branch: %s, Message: %s, URL: %s\n",
				rec.Repo, rec.Branch, rec.Message, rec.URL)
		}
		fmt.Fprintln(w)
	}
}

func SkipStale(w io.Writer, repo string, days int) {
	noticeColor.Fprintf(w, "Skipping %s - Not updated in the last %d days\n", repo, days)
}

func Fetching(w io.Writer, repo, branch string) {
	fetchColor.Fprintf(w, "Fetching commits for repo: %s, branch: %s\n", repo, branch)
}

func SkipNotFound(w io.Writer, repo, branch string) {
	noticeColor.Fprintf(w, "Skipping %s (%s) - Not Found (404)\n", repo, branch)
}

func CommitError(w io.Writer, repo, branch string, err error) {
	errorColor.Fprintf(w, "An error occurred for %s (%s): %v\n", repo, branch, err)
}

func BranchError(w io.Writer, repo string, err error) {
	errorColor.Fprintf(w, "Skipping %s - could not list branches: %v\n", repo, err)
}
