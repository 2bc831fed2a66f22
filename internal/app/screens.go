package app

// Screen identifies one level of the navigation hierarchy. The set is
// closed: every screen owns exactly one collection and knows its parent.
type Screen int

const (
	ScreenProducts Screen = iota
	ScreenWorkflows
	ScreenBuildRuns
	ScreenBuildRunDetail
	ScreenActionArtifacts
	ScreenLogViewer

	screenCount int = iota
)

// String returns the screen name for titles and breadcrumbs
func (s Screen) String() string {
	switch s {
	case ScreenProducts:
		return "Products"
	case ScreenWorkflows:
		return "Workflows"
	case ScreenBuildRuns:
		return "Build Runs"
	case ScreenBuildRunDetail:
		return "Build Run"
	case ScreenActionArtifacts:
		return "Artifacts"
	case ScreenLogViewer:
		return "Log"
	default:
		return "?"
	}
}

// parent returns the screen "go back" lands on. Products is the root and is
// its own parent.
func (s Screen) parent() Screen {
	switch s {
	case ScreenWorkflows:
		return ScreenProducts
	case ScreenBuildRuns:
		return ScreenWorkflows
	case ScreenBuildRunDetail:
		return ScreenBuildRuns
	case ScreenActionArtifacts:
		return ScreenBuildRunDetail
	case ScreenLogViewer:
		return ScreenActionArtifacts
	default:
		return ScreenProducts
	}
}

// pollable reports whether the screen's data can change without user action
// and is therefore refreshed in the background.
func (s Screen) pollable() bool {
	return s == ScreenWorkflows || s == ScreenBuildRuns
}

// clampIndex keeps a selection inside [0, n-1], or 0 for empty collections.
func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
