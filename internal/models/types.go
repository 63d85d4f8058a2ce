package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DateLayout is the calendar date format used in CSV rows and summary headers.
const DateLayout = "2006-01-02"

// CommitRecord is one matching commit on one branch.
type CommitRecord struct {
	Date    string `db:"date" json:"date"`
	Repo    string `db:"repo" json:"repo"`
	Branch  string `db:"branch" json:"branch"`
	Message string `db:"message" json:"message"`
	URL     string `db:"url" json:"url"`
}

// CSVRow returns the record in header order: date, repo, branch, message, commit url.
func (r CommitRecord) CSVRow() []string {
	return []string{r.Date, r.Repo, r.Branch, r.Message, r.URL}
}

// DateGroups maps a calendar date to the records seen for it, in insertion order.
type DateGroups struct {
	groups map[string][]CommitRecord
	total  int
}

func NewDateGroups() *DateGroups {
	return &DateGroups{groups: make(map[string][]CommitRecord)}
}

func (g *DateGroups) Add(rec CommitRecord) {
	g.groups[rec.Date] = append(g.groups[rec.Date], rec)
	g.total++
}

// Dates returns the known dates sorted ascending.
func (g *DateGroups) Dates() []string {
	dates := make([]string, 0, len(g.groups))
	for date := range g.groups {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func (g *DateGroups) Records(date string) []CommitRecord {
	return g.groups[date]
}

// All returns every record, dates ascending and insertion order within a date.
func (g *DateGroups) All() []CommitRecord {
	all := make([]CommitRecord, 0, g.total)
	for _, date := range g.Dates() {
		all = append(all, g.groups[date]...)
	}
	return all
}

func (g *DateGroups) Len() int {
	return g.total
}

func (g *DateGroups) Empty() bool {
	return g.total == 0
}

// ErrorPolicy decides what happens when a single API call fails mid-run.
type ErrorPolicy string

const (
	PolicyFatal ErrorPolicy = "fatal"
	PolicySkip  ErrorPolicy = "skip"
)

var ErrInvalidPolicy = errors.New("invalid error policy")

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyFatal, PolicySkip:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidPolicy, s, PolicyFatal, PolicySkip)
}
