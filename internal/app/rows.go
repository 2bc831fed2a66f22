package app

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/havard/lazycloud/internal/ui/styles"
)

// rowSet is the materialized view of the active collection: everything the
// renderer needs, regenerated in full after every transition or data change.
// It is scratch state; nothing patches it incrementally.
type rowSet struct {
	title  string
	header string
	detail string
	body   []string
}

// column truncates and pads a cell to a fixed display width.
func column(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// shortDate trims an ISO-8601 timestamp down to something scannable.
func shortDate(s string) string {
	if len(s) >= 16 && strings.Contains(s, "T") {
		return strings.Replace(s[:16], "T", " ", 1)
	}
	return s
}

// rebuildRows regenerates the full row set from the active collection.
func (m *Model) rebuildRows() {
	rows := rowSet{title: m.screen.String()}

	switch m.screen {
	case ScreenProducts:
		rows.header = column("NAME", 28) + column("BUNDLE ID", 36) + "ID"
		for _, p := range m.products {
			rows.body = append(rows.body, column(p.Name, 28)+column(p.BundleID, 36)+p.ID)
		}

	case ScreenWorkflows:
		if p := m.selectedProduct(); p != nil {
			rows.title = fmt.Sprintf("Workflows > %s", p.Name)
		}
		rows.header = column("NAME", 36) + "ENABLED"
		for _, wf := range m.workflows {
			enabled := "yes"
			if !wf.Enabled {
				enabled = "no"
			}
			rows.body = append(rows.body, column(wf.Name, 36)+enabled)
		}

	case ScreenBuildRuns:
		if wf := m.selectedWorkflow(); wf != nil {
			rows.title = fmt.Sprintf("Build Runs > %s", wf.Name)
		}
		rows.header = column("#", 6) + column("BRANCH", 24) + column("STATUS", 12) +
			column("RESULT", 12) + "CREATED"
		for _, run := range m.buildRuns {
			icon := styles.StatusIcon(run.Status, run.CompletionStatus)
			rows.body = append(rows.body,
				column(run.Number, 6)+column(run.Branch, 24)+
					column(icon+" "+run.Status, 12)+column(run.CompletionStatus, 12)+
					shortDate(run.CreatedDate))
		}

	case ScreenBuildRunDetail:
		if m.runDetail != nil {
			rows.title = fmt.Sprintf("Build Run #%s", m.runDetail.Number)
			status := styles.BuildStatus(m.runDetail.Status, m.runDetail.CompletionStatus).
				Render(styles.StatusIcon(m.runDetail.Status, m.runDetail.CompletionStatus) +
					" " + m.runDetail.Status)
			rows.detail = fmt.Sprintf("%s · %s · created %s · started %s · finished %s",
				status, m.runDetail.Branch,
				shortDate(m.runDetail.CreatedDate),
				shortDate(m.runDetail.StartedDate),
				shortDate(m.runDetail.FinishedDate))
		}
		rows.header = column("ACTION", 28) + column("TYPE", 12) + column("STATUS", 12) + "FINISHED"
		for _, action := range m.actions {
			rows.body = append(rows.body,
				column(action.Name, 28)+column(action.ActionType, 12)+
					column(action.Status, 12)+shortDate(action.FinishedDate))
		}

	case ScreenActionArtifacts:
		if action := m.selectedAction(); action != nil {
			rows.title = fmt.Sprintf("Artifacts > %s", action.Name)
		}
		rows.header = column("FILE", 36) + column("TYPE", 22) + "URL"
		for _, a := range m.artifacts {
			rows.body = append(rows.body,
				column(a.FileName, 36)+column(a.FileType, 22)+a.DownloadURL)
		}

	case ScreenLogViewer:
		rows.title = fmt.Sprintf("Log > %s", m.logTitle)
		rows.body = m.logLines
	}

	m.rows = rows
	m.cursors[m.screen] = clampIndex(m.cursors[m.screen], m.activeLen())
}

// splitLogLines splits fetched content on newline boundaries; an empty
// document still yields one placeholder line so the viewer has something to
// show.
func splitLogLines(content string) []string {
	if strings.TrimSpace(content) == "" {
		return []string{"(empty log)"}
	}
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}
