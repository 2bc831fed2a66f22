package appstore

import (
	"testing"
)

func TestSortBuildRuns(t *testing.T) {
	runs := []BuildRun{
		{ID: "c", Number: "99", CreatedDate: "2024-05-01T09:00:00Z"},
		{ID: "a", Number: "101", CreatedDate: "2024-05-03T10:00:00Z"},
		{ID: "b", Number: "100", CreatedDate: "2024-05-02T18:00:00Z"},
	}

	SortBuildRuns(runs)

	want := []string{"101", "100", "99"}
	for i, n := range want {
		if runs[i].Number != n {
			t.Errorf("position %d: expected number %s, got %s", i, n, runs[i].Number)
		}
	}
}

func TestSortBuildRuns_TieBreakers(t *testing.T) {
	// Same created date: higher numeric number first.
	runs := []BuildRun{
		{ID: "x", Number: "9", CreatedDate: "2024-05-01T09:00:00Z"},
		{ID: "y", Number: "10", CreatedDate: "2024-05-01T09:00:00Z"},
	}
	SortBuildRuns(runs)
	if runs[0].Number != "10" {
		t.Errorf("expected numeric ordering (10 before 9), got %s first", runs[0].Number)
	}

	// Same date and number: ascending id.
	runs = []BuildRun{
		{ID: "beta", Number: "7", CreatedDate: "2024-05-01T09:00:00Z"},
		{ID: "alpha", Number: "7", CreatedDate: "2024-05-01T09:00:00Z"},
	}
	SortBuildRuns(runs)
	if runs[0].ID != "alpha" {
		t.Errorf("expected id tiebreak (alpha first), got %s", runs[0].ID)
	}

	// Absent number sorts below any real number.
	runs = []BuildRun{
		{ID: "n", Number: "-", CreatedDate: "2024-05-01T09:00:00Z"},
		{ID: "m", Number: "1", CreatedDate: "2024-05-01T09:00:00Z"},
	}
	SortBuildRuns(runs)
	if runs[0].Number != "1" {
		t.Errorf("expected real number before '-', got %s first", runs[0].Number)
	}
}

func TestSortBuildRuns_Idempotent(t *testing.T) {
	runs := []BuildRun{
		{ID: "c", Number: "99", CreatedDate: "2024-05-01T09:00:00Z"},
		{ID: "a", Number: "101", CreatedDate: "2024-05-03T10:00:00Z"},
		{ID: "b", Number: "100", CreatedDate: "2024-05-02T18:00:00Z"},
	}

	SortBuildRuns(runs)
	once := make([]BuildRun, len(runs))
	copy(once, runs)

	SortBuildRuns(runs)
	if !EqualBuildRuns(once, runs) {
		t.Error("expected sorting a sorted list to be a no-op")
	}
}

func TestEqualBuildRuns(t *testing.T) {
	a := mockBuildRuns()
	b := mockBuildRuns()

	if !EqualBuildRuns(a, b) {
		t.Error("expected structurally identical collections to be equal")
	}

	b[1].Status = "running"
	if EqualBuildRuns(a, b) {
		t.Error("expected a single differing field to be detected")
	}

	if EqualBuildRuns(a, a[:2]) {
		t.Error("expected differing lengths to be unequal")
	}

	// Order matters: runs are held sorted.
	c := mockBuildRuns()
	c[0], c[1] = c[1], c[0]
	if EqualBuildRuns(a, c) {
		t.Error("expected reordered collections to be unequal")
	}
}

func TestEqualWorkflows(t *testing.T) {
	a := []Workflow{{ID: "wf-1", Name: "PR Checks", Enabled: true}}
	b := []Workflow{{ID: "wf-1", Name: "PR Checks", Enabled: true}}

	if !EqualWorkflows(a, b) {
		t.Error("expected equal workflow collections")
	}

	b[0].Enabled = false
	if EqualWorkflows(a, b) {
		t.Error("expected enabled flag change to be detected")
	}
}

func TestArtifactIsLog(t *testing.T) {
	tests := []struct {
		fileType string
		expected bool
	}{
		{FileTypeLog, true},
		{FileTypeLogBundle, true},
		{"XCODE_RESULT_BUNDLE", false},
		{"-", false},
	}

	for _, tt := range tests {
		a := Artifact{FileType: tt.fileType}
		if got := a.IsLog(); got != tt.expected {
			t.Errorf("IsLog() for %s = %v, expected %v", tt.fileType, got, tt.expected)
		}
	}
}
