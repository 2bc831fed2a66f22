// Package app is the navigation state machine: it owns every loaded
// collection, drives screen transitions, and rebuilds the displayed rows
// after each one. All state changes flow through the single bubbletea update
// loop, so no locking is needed anywhere.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/havard/lazycloud/internal/appstore"
	"github.com/havard/lazycloud/internal/config"
	"github.com/havard/lazycloud/internal/keymap"
	"github.com/havard/lazycloud/internal/ui/styles"
)

// pageStep is how many rows ctrl+u/ctrl+d move the cursor.
const pageStep = 10

// Model is the root bubbletea model
type Model struct {
	client appstore.Client
	keymap keymap.KeyMap

	screen Screen
	// Last selected index per screen, so returning to a parent restores
	// the previous cursor.
	cursors [screenCount]int

	// Loaded collections, replaced wholesale on every (re)load.
	products  []appstore.Product
	workflows []appstore.Workflow
	buildRuns []appstore.BuildRun
	runDetail *appstore.BuildRun
	actions   []appstore.BuildAction
	artifacts []appstore.Artifact
	logTitle  string
	logLines  []string

	rows rowSet

	width  int
	height int

	loading    bool
	loadingMsg string
	statusMsg  string
	lastError  string
	warning    string // persistent mock-mode banner

	spinner  spinner.Model
	logView  viewport.Model
	logReady bool
	showHelp bool

	// pollGen invalidates in-flight ticks and poll results: anything
	// carrying an older generation is discarded on arrival.
	pollGen int
}

// New creates the root model. warning, when non-empty, is shown persistently
// in the status bar (used for the credential-less mock mode notice).
func New(client appstore.Client, warning string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.DimmedText

	m := &Model{
		client:  client,
		keymap:  keymap.DefaultKeyMap(),
		screen:  ScreenProducts,
		warning: warning,
		spinner: sp,
	}
	m.rebuildRows()
	return m
}

// Init loads the root collection and arms the background poll timer
func (m *Model) Init() tea.Cmd {
	m.loading = true
	m.loadingMsg = "Loading products..."
	return tea.Batch(m.loadProducts(), m.spinner.Tick, m.schedulePoll())
}

// activeLen returns the size of the collection the current screen displays.
func (m *Model) activeLen() int {
	switch m.screen {
	case ScreenProducts:
		return len(m.products)
	case ScreenWorkflows:
		return len(m.workflows)
	case ScreenBuildRuns:
		return len(m.buildRuns)
	case ScreenBuildRunDetail:
		return len(m.actions)
	case ScreenActionArtifacts:
		return len(m.artifacts)
	case ScreenLogViewer:
		return len(m.logLines)
	}
	return 0
}

func (m *Model) selectedProduct() *appstore.Product {
	if len(m.products) == 0 {
		return nil
	}
	return &m.products[clampIndex(m.cursors[ScreenProducts], len(m.products))]
}

func (m *Model) selectedWorkflow() *appstore.Workflow {
	if len(m.workflows) == 0 {
		return nil
	}
	return &m.workflows[clampIndex(m.cursors[ScreenWorkflows], len(m.workflows))]
}

func (m *Model) selectedRun() *appstore.BuildRun {
	if len(m.buildRuns) == 0 {
		return nil
	}
	return &m.buildRuns[clampIndex(m.cursors[ScreenBuildRuns], len(m.buildRuns))]
}

func (m *Model) selectedAction() *appstore.BuildAction {
	if len(m.actions) == 0 {
		return nil
	}
	return &m.actions[clampIndex(m.cursors[ScreenBuildRunDetail], len(m.actions))]
}

func (m *Model) selectedArtifact() *appstore.Artifact {
	if len(m.artifacts) == 0 {
		return nil
	}
	return &m.artifacts[clampIndex(m.cursors[ScreenActionArtifacts], len(m.artifacts))]
}

// Load commands. The client call blocks inside the command goroutine;
// bubbletea serializes delivery of the result back onto the update loop.

func (m *Model) loadProducts() tea.Cmd {
	return func() tea.Msg {
		products, err := m.client.ListProducts()
		if err != nil {
			return errMsg{err: err}
		}
		return productsLoadedMsg{products: products}
	}
}

func (m *Model) loadWorkflows(productID string) tea.Cmd {
	return func() tea.Msg {
		workflows, err := m.client.ListWorkflows(productID)
		if err != nil {
			return errMsg{err: err}
		}
		return workflowsLoadedMsg{productID: productID, workflows: workflows}
	}
}

func (m *Model) loadBuildRuns(workflowID string) tea.Cmd {
	return func() tea.Msg {
		runs, err := m.client.ListBuildRuns(workflowID)
		if err != nil {
			return errMsg{err: err}
		}
		return buildRunsLoadedMsg{workflowID: workflowID, runs: runs}
	}
}

func (m *Model) loadRunDetail(buildRunID string) tea.Cmd {
	return func() tea.Msg {
		run, err := m.client.GetBuildRun(buildRunID)
		if err != nil {
			return errMsg{err: err}
		}
		actions, err := m.client.ListBuildActions(buildRunID)
		if err != nil {
			return errMsg{err: err}
		}
		return runDetailLoadedMsg{buildRunID: buildRunID, run: run, actions: actions}
	}
}

func (m *Model) loadArtifacts(actionID string) tea.Cmd {
	return func() tea.Msg {
		artifacts, err := m.client.ListArtifacts(actionID)
		if err != nil {
			return errMsg{err: err}
		}
		return artifactsLoadedMsg{actionID: actionID, artifacts: artifacts}
	}
}

func (m *Model) loadLog(a appstore.Artifact) tea.Cmd {
	return func() tea.Msg {
		content, err := m.client.FetchArtifactContent(a)
		if err != nil {
			return errMsg{err: err}
		}
		return logLoadedMsg{fileName: a.FileName, content: content}
	}
}

func (m *Model) triggerBuild(workflowID string) tea.Cmd {
	return func() tea.Msg {
		run, err := m.client.CreateBuildRun(workflowID)
		if err != nil {
			return errMsg{err: err}
		}
		return buildTriggeredMsg{number: run.Number}
	}
}

func (m *Model) downloadArtifact(a appstore.Artifact) tea.Cmd {
	return func() tea.Msg {
		path, err := m.client.DownloadArtifact(a)
		if err != nil {
			return errMsg{err: err}
		}
		return downloadedMsg{path: path}
	}
}

// Background polling. schedulePoll bumps the generation so only the newest
// armed timer fires an action; the tick handler rearms unconditionally, so
// the interval is always measured from the previous tick.

func (m *Model) schedulePoll() tea.Cmd {
	m.pollGen++
	gen := m.pollGen
	return tea.Tick(config.PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func (m *Model) pollWorkflows(productID string) tea.Cmd {
	gen := m.pollGen
	return func() tea.Msg {
		workflows, err := m.client.ListWorkflows(productID)
		return workflowsPolledMsg{gen: gen, productID: productID, workflows: workflows, err: err}
	}
}

func (m *Model) pollBuildRuns(workflowID string) tea.Cmd {
	gen := m.pollGen
	return func() tea.Msg {
		runs, err := m.client.ListBuildRuns(workflowID)
		return buildRunsPolledMsg{gen: gen, workflowID: workflowID, runs: runs, err: err}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLogView()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case errMsg:
		m.loading = false
		m.lastError = msg.err.Error()
		return m, nil

	case productsLoadedMsg:
		m.loading = false
		m.lastError = ""
		m.products = msg.products
		m.screen = ScreenProducts
		m.rebuildRows()
		return m, m.schedulePoll()

	case workflowsLoadedMsg:
		if p := m.selectedProduct(); p == nil || p.ID != msg.productID {
			// Response for a product no longer selected; drop it.
			return m, nil
		}
		m.loading = false
		m.lastError = ""
		m.workflows = msg.workflows
		m.screen = ScreenWorkflows
		m.rebuildRows()
		return m, m.schedulePoll()

	case buildRunsLoadedMsg:
		if wf := m.selectedWorkflow(); wf == nil || wf.ID != msg.workflowID {
			return m, nil
		}
		m.loading = false
		m.lastError = ""
		m.buildRuns = msg.runs
		m.screen = ScreenBuildRuns
		m.rebuildRows()
		return m, m.schedulePoll()

	case runDetailLoadedMsg:
		if run := m.selectedRun(); run == nil || run.ID != msg.buildRunID {
			return m, nil
		}
		m.loading = false
		m.lastError = ""
		m.runDetail = msg.run
		m.actions = msg.actions
		m.screen = ScreenBuildRunDetail
		m.rebuildRows()
		return m, nil

	case artifactsLoadedMsg:
		if action := m.selectedAction(); action == nil || action.ID != msg.actionID {
			return m, nil
		}
		m.loading = false
		m.lastError = ""
		m.artifacts = msg.artifacts
		m.screen = ScreenActionArtifacts
		m.rebuildRows()
		return m, nil

	case logLoadedMsg:
		m.loading = false
		m.lastError = ""
		m.logTitle = msg.fileName
		m.logLines = splitLogLines(msg.content)
		m.screen = ScreenLogViewer
		m.logReady = false
		m.rebuildRows()
		m.resizeLogView()
		return m, nil

	case buildTriggeredMsg:
		m.statusMsg = fmt.Sprintf("Build %s created", msg.number)
		if wf := m.selectedWorkflow(); wf != nil {
			m.loading = true
			m.loadingMsg = "Reloading build runs..."
			return m, tea.Batch(m.loadBuildRuns(wf.ID), m.spinner.Tick)
		}
		return m, nil

	case downloadedMsg:
		m.statusMsg = "Saved to " + msg.path
		return m, nil

	case urlOpenedMsg:
		if msg.err != nil {
			m.lastError = fmt.Sprintf("could not open %s: %v", msg.url, msg.err)
		} else {
			m.statusMsg = "Opened " + msg.url
		}
		return m, nil

	case pollTickMsg:
		if msg.gen != m.pollGen {
			return m, nil
		}
		cmds := []tea.Cmd{m.schedulePoll()}
		if m.screen.pollable() {
			switch m.screen {
			case ScreenWorkflows:
				if p := m.selectedProduct(); p != nil {
					cmds = append(cmds, m.pollWorkflows(p.ID))
				}
			case ScreenBuildRuns:
				if wf := m.selectedWorkflow(); wf != nil {
					cmds = append(cmds, m.pollBuildRuns(wf.ID))
				}
			}
		}
		return m, tea.Batch(cmds...)

	case workflowsPolledMsg:
		if msg.gen != m.pollGen || m.screen != ScreenWorkflows {
			return m, nil
		}
		if p := m.selectedProduct(); p == nil || p.ID != msg.productID {
			return m, nil
		}
		if msg.err != nil {
			m.lastError = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		if appstore.EqualWorkflows(m.workflows, msg.workflows) {
			return m, nil
		}
		m.workflows = msg.workflows
		m.rebuildRows()
		m.statusMsg = "Workflows updated"
		return m, nil

	case buildRunsPolledMsg:
		if msg.gen != m.pollGen || m.screen != ScreenBuildRuns {
			return m, nil
		}
		if wf := m.selectedWorkflow(); wf == nil || wf.ID != msg.workflowID {
			return m, nil
		}
		if msg.err != nil {
			m.lastError = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		if appstore.EqualBuildRuns(m.buildRuns, msg.runs) {
			return m, nil
		}
		m.buildRuns = msg.runs
		m.rebuildRows()
		m.statusMsg = "Build runs updated"
		return m, nil
	}

	// Everything else (scroll wheel etc.) goes to the log viewport.
	if m.screen == ScreenLogViewer {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keymap.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		if key.Matches(msg, m.keymap.Back) {
			m.showHelp = false
		}
		return m, nil
	}

	// Any keypress clears transient feedback from the previous action.
	m.statusMsg = ""

	if key.Matches(msg, m.keymap.Back) {
		m.goBack()
		return m, nil
	}
	if key.Matches(msg, m.keymap.Refresh) {
		return m, m.reload()
	}

	if m.screen == ScreenLogViewer {
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Up):
		m.cursors[m.screen] = clampIndex(m.cursors[m.screen]-1, m.activeLen())
	case key.Matches(msg, m.keymap.Down):
		m.cursors[m.screen] = clampIndex(m.cursors[m.screen]+1, m.activeLen())
	case key.Matches(msg, m.keymap.Top):
		m.cursors[m.screen] = 0
	case key.Matches(msg, m.keymap.Bottom):
		m.cursors[m.screen] = clampIndex(m.activeLen()-1, m.activeLen())
	case key.Matches(msg, m.keymap.PageUp):
		m.cursors[m.screen] = clampIndex(m.cursors[m.screen]-pageStep, m.activeLen())
	case key.Matches(msg, m.keymap.PageDown):
		m.cursors[m.screen] = clampIndex(m.cursors[m.screen]+pageStep, m.activeLen())
	case key.Matches(msg, m.keymap.Select):
		return m, m.activate()
	case key.Matches(msg, m.keymap.Trigger):
		if m.screen == ScreenBuildRuns {
			if wf := m.selectedWorkflow(); wf != nil {
				m.loading = true
				m.loadingMsg = "Triggering build..."
				return m, tea.Batch(m.triggerBuild(wf.ID), m.spinner.Tick)
			}
		}
	case key.Matches(msg, m.keymap.Download):
		if m.screen == ScreenActionArtifacts {
			if a := m.selectedArtifact(); a != nil {
				return m, m.downloadArtifact(*a)
			}
		}
	case key.Matches(msg, m.keymap.Open):
		if m.screen == ScreenActionArtifacts {
			if a := m.selectedArtifact(); a != nil {
				return m, m.openArtifactURL(*a)
			}
		}
	}
	return m, nil
}

// activate moves one level down the hierarchy from the current selection.
// Empty collections have nothing to activate.
func (m *Model) activate() tea.Cmd {
	if m.activeLen() == 0 {
		return nil
	}

	switch m.screen {
	case ScreenProducts:
		p := m.selectedProduct()
		m.cursors[ScreenWorkflows] = 0
		m.loading = true
		m.loadingMsg = "Loading workflows..."
		return tea.Batch(m.loadWorkflows(p.ID), m.spinner.Tick)

	case ScreenWorkflows:
		wf := m.selectedWorkflow()
		m.cursors[ScreenBuildRuns] = 0
		m.loading = true
		m.loadingMsg = "Loading build runs..."
		return tea.Batch(m.loadBuildRuns(wf.ID), m.spinner.Tick)

	case ScreenBuildRuns:
		run := m.selectedRun()
		m.cursors[ScreenBuildRunDetail] = 0
		m.loading = true
		m.loadingMsg = "Loading build run..."
		return tea.Batch(m.loadRunDetail(run.ID), m.spinner.Tick)

	case ScreenBuildRunDetail:
		action := m.selectedAction()
		m.cursors[ScreenActionArtifacts] = 0
		m.loading = true
		m.loadingMsg = "Loading artifacts..."
		return tea.Batch(m.loadArtifacts(action.ID), m.spinner.Tick)

	case ScreenActionArtifacts:
		a := m.selectedArtifact()
		if a.IsLog() {
			m.loading = true
			m.loadingMsg = "Fetching log..."
			return tea.Batch(m.loadLog(*a), m.spinner.Tick)
		}
		return m.openArtifactURL(*a)
	}
	return nil
}

// goBack returns to the parent screen, restoring its remembered cursor.
// At the root it is a no-op.
func (m *Model) goBack() {
	if m.screen == ScreenProducts {
		return
	}
	if m.screen == ScreenLogViewer {
		// Log text can be large; release it on the way out.
		m.logLines = nil
		m.logTitle = ""
		m.logReady = false
	}
	m.screen = m.screen.parent()
	m.rebuildRows()
}

// reload re-runs the load for whichever screen is active. Bumping the poll
// generation first means any in-flight poll result loses to this reload.
func (m *Model) reload() tea.Cmd {
	m.pollGen++

	var cmd tea.Cmd
	switch m.screen {
	case ScreenProducts:
		cmd = m.loadProducts()
	case ScreenWorkflows:
		if p := m.selectedProduct(); p != nil {
			cmd = m.loadWorkflows(p.ID)
		}
	case ScreenBuildRuns:
		if wf := m.selectedWorkflow(); wf != nil {
			cmd = m.loadBuildRuns(wf.ID)
		}
	case ScreenBuildRunDetail:
		if run := m.selectedRun(); run != nil {
			cmd = m.loadRunDetail(run.ID)
		}
	case ScreenActionArtifacts:
		if action := m.selectedAction(); action != nil {
			cmd = m.loadArtifacts(action.ID)
		}
	case ScreenLogViewer:
		if a := m.selectedArtifact(); a != nil {
			cmd = m.loadLog(*a)
		}
	}
	if cmd == nil {
		return m.schedulePoll()
	}
	m.loading = true
	m.loadingMsg = "Reloading..."
	return tea.Batch(cmd, m.spinner.Tick, m.schedulePoll())
}

func (m *Model) resizeLogView() {
	if m.width == 0 || m.height == 0 {
		return
	}
	height := m.height - config.HeaderHeight - config.StatusBarHeight
	if height < 1 {
		height = 1
	}
	if !m.logReady {
		m.logView = viewport.New(m.width, height)
		m.logReady = true
	} else {
		m.logView.Width = m.width
		m.logView.Height = height
	}
	if m.screen == ScreenLogViewer {
		m.logView.SetContent(strings.Join(m.logLines, "\n"))
	}
}
