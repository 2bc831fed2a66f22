package app

import (
	"github.com/havard/lazycloud/internal/appstore"
)

// Load results. Each message carries the parent id the fetch was scoped to
// so responses arriving after the user has navigated away are discarded.

type errMsg struct{ err error }

type productsLoadedMsg struct {
	products []appstore.Product
}

type workflowsLoadedMsg struct {
	productID string
	workflows []appstore.Workflow
}

type buildRunsLoadedMsg struct {
	workflowID string
	runs       []appstore.BuildRun
}

type runDetailLoadedMsg struct {
	buildRunID string
	run        *appstore.BuildRun
	actions    []appstore.BuildAction
}

type artifactsLoadedMsg struct {
	actionID  string
	artifacts []appstore.Artifact
}

type logLoadedMsg struct {
	fileName string
	content  string
}

type buildTriggeredMsg struct {
	number string
}

type downloadedMsg struct {
	path string
}

type urlOpenedMsg struct {
	url string
	err error
}

// Background refresh. Ticks and results carry the poll generation current
// when they were armed; anything stale is ignored, so a user-triggered
// reload always wins over a pending poll result.

type pollTickMsg struct {
	gen int
}

type workflowsPolledMsg struct {
	gen       int
	productID string
	workflows []appstore.Workflow
	err       error
}

type buildRunsPolledMsg struct {
	gen        int
	workflowID string
	runs       []appstore.BuildRun
	err        error
}
