package appstore

import (
	"sort"
	"strconv"
)

// Product represents an Xcode Cloud product (an app registered for CI)
type Product struct {
	ID       string
	Name     string
	BundleID string
}

// Workflow represents a build pipeline attached to a product
type Workflow struct {
	ID      string
	Name    string
	Enabled bool
}

// BuildRun represents one execution of a workflow. Timestamps are ISO-8601
// strings as returned by the API, or "-" when absent.
type BuildRun struct {
	ID               string
	Number           string
	Branch           string
	Status           string
	CompletionStatus string
	CreatedDate      string
	StartedDate      string
	FinishedDate     string
}

// BuildAction represents one phase (build, test, archive...) of a build run
type BuildAction struct {
	ID           string
	Name         string
	ActionType   string
	Status       string
	StartedDate  string
	FinishedDate string
}

// Artifact represents a file produced by a build action
type Artifact struct {
	ID          string
	FileName    string
	FileType    string
	DownloadURL string
}

// Artifact file types the API declares for loggable content.
const (
	FileTypeLog       = "LOG"
	FileTypeLogBundle = "LOG_BUNDLE"
)

// IsLog reports whether the artifact's declared type is viewable log content.
func (a Artifact) IsLog() bool {
	return a.FileType == FileTypeLog || a.FileType == FileTypeLogBundle
}

// runNumber parses the run number for ordering; "-" and malformed numbers
// sort below any real number.
func runNumber(r BuildRun) int {
	n, err := strconv.Atoi(r.Number)
	if err != nil {
		return -1
	}
	return n
}

// SortBuildRuns orders runs newest-first: created date descending, then
// numeric run number descending, then id ascending so the order is a total
// order and re-sorting is a no-op.
func SortBuildRuns(runs []BuildRun) {
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].CreatedDate != runs[j].CreatedDate {
			return runs[i].CreatedDate > runs[j].CreatedDate
		}
		ni, nj := runNumber(runs[i]), runNumber(runs[j])
		if ni != nj {
			return ni > nj
		}
		return runs[i].ID < runs[j].ID
	})
}

// EqualWorkflows reports whether two workflow collections are structurally
// identical, order-sensitive.
func EqualWorkflows(a, b []Workflow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualBuildRuns reports whether two build run collections are structurally
// identical. Order matters: runs are held in sorted order, so a reordering is
// a real change.
func EqualBuildRuns(a, b []BuildRun) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// orDash maps an absent attribute to the "-" display default.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
