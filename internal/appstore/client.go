// Package appstore provides a client for the App Store Connect Xcode Cloud
// API. With credentials the client talks to the live API; without them it
// serves a fixed in-memory dataset so the whole UI can be exercised offline.
package appstore

import (
	"github.com/havard/lazycloud/internal/auth"
)

// Client is the operation surface the UI consumes. Two implementations
// exist: the live API client and the mock dataset. The choice is made once
// at construction, never per call.
type Client interface {
	ListProducts() ([]Product, error)
	ListWorkflows(productID string) ([]Workflow, error)
	ListBuildRuns(workflowID string) ([]BuildRun, error)
	GetBuildRun(buildRunID string) (*BuildRun, error)
	ListBuildActions(buildRunID string) ([]BuildAction, error)
	CreateBuildRun(workflowID string) (*BuildRun, error)
	ListArtifacts(actionID string) ([]Artifact, error)

	// FetchArtifactContent returns the artifact as viewable text: log
	// bundles are extracted, plain text passes through, binary content
	// becomes a placeholder message.
	FetchArtifactContent(a Artifact) (string, error)

	// DownloadArtifact writes the artifact under the downloads directory
	// and returns the resulting path.
	DownloadArtifact(a Artifact) (string, error)

	// MockMode reports whether this client serves the offline dataset.
	MockMode() bool
}

// NewClient selects the implementation: live when credentials are present,
// mock otherwise.
func NewClient(creds *auth.Credentials, opts ...ClientOption) Client {
	if creds == nil {
		return NewMockClient()
	}
	return newLiveClient(creds, opts...)
}
