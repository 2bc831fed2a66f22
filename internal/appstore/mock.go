package appstore

import (
	"fmt"
	"strconv"

	"github.com/havard/lazycloud/internal/artifact"
)

// mockClient serves a fixed dataset so navigation, rendering, and build
// triggering can be exercised without credentials or network access. The
// dataset is deterministic apart from runs created via CreateBuildRun, which
// are kept for the lifetime of the client.
type mockClient struct {
	triggered map[string][]BuildRun
}

// NewMockClient creates a client backed by the offline dataset.
func NewMockClient() Client {
	return &mockClient{
		triggered: make(map[string][]BuildRun),
	}
}

func (m *mockClient) MockMode() bool { return true }

func (m *mockClient) ListProducts() ([]Product, error) {
	return []Product{
		{ID: "prod-1", Name: "Sample App", BundleID: "com.example.sample"},
		{ID: "prod-2", Name: "Companion App", BundleID: "com.example.companion"},
	}, nil
}

func (m *mockClient) ListWorkflows(productID string) ([]Workflow, error) {
	if productID == "prod-2" {
		return []Workflow{
			{ID: "wf-3", Name: "Release", Enabled: true},
		}, nil
	}
	return []Workflow{
		{ID: "wf-1", Name: "PR Checks", Enabled: true},
		{ID: "wf-2", Name: "Nightly", Enabled: true},
	}, nil
}

func mockBuildRuns() []BuildRun {
	return []BuildRun{
		{
			ID:               "run-101",
			Number:           "101",
			Branch:           "main",
			Status:           "finished",
			CompletionStatus: "succeeded",
			CreatedDate:      "2024-05-03T10:15:00Z",
			StartedDate:      "2024-05-03T10:15:20Z",
			FinishedDate:     "2024-05-03T10:31:02Z",
		},
		{
			ID:               "run-100",
			Number:           "100",
			Branch:           "main",
			Status:           "finished",
			CompletionStatus: "failed",
			CreatedDate:      "2024-05-02T18:40:00Z",
			StartedDate:      "2024-05-02T18:40:15Z",
			FinishedDate:     "2024-05-02T18:52:47Z",
		},
		{
			ID:               "run-99",
			Number:           "99",
			Branch:           "feature/login",
			Status:           "running",
			CompletionStatus: "-",
			CreatedDate:      "2024-05-01T09:05:00Z",
			StartedDate:      "2024-05-01T09:05:10Z",
			FinishedDate:     "-",
		},
	}
}

func (m *mockClient) ListBuildRuns(workflowID string) ([]BuildRun, error) {
	runs := mockBuildRuns()
	runs = append(runs, m.triggered[workflowID]...)
	SortBuildRuns(runs)
	return runs, nil
}

func (m *mockClient) GetBuildRun(buildRunID string) (*BuildRun, error) {
	for _, runs := range m.triggered {
		for _, run := range runs {
			if run.ID == buildRunID {
				return &run, nil
			}
		}
	}
	for _, run := range mockBuildRuns() {
		if run.ID == buildRunID {
			return &run, nil
		}
	}
	return nil, fmt.Errorf("build run %q not found", buildRunID)
}

func (m *mockClient) ListBuildActions(buildRunID string) ([]BuildAction, error) {
	return []BuildAction{
		{
			ID:           "action-1",
			Name:         "Archive - iOS",
			ActionType:   "ARCHIVE",
			Status:       "finished",
			StartedDate:  "2024-05-03T10:15:30Z",
			FinishedDate: "2024-05-03T10:27:12Z",
		},
		{
			ID:           "action-2",
			Name:         "Test - iOS",
			ActionType:   "TEST",
			Status:       "finished",
			StartedDate:  "2024-05-03T10:16:01Z",
			FinishedDate: "2024-05-03T10:30:44Z",
		},
	}, nil
}

// CreateBuildRun simulates the trigger endpoint: each call yields the next
// run number, starting at 102, visible in subsequent lists.
func (m *mockClient) CreateBuildRun(workflowID string) (*BuildRun, error) {
	number := 102
	for _, runs := range m.triggered {
		number += len(runs)
	}
	run := BuildRun{
		ID:               fmt.Sprintf("run-%d", number),
		Number:           strconv.Itoa(number),
		Branch:           "main",
		Status:           "created",
		CompletionStatus: "-",
		CreatedDate:      fmt.Sprintf("2024-05-04T12:00:%02dZ", number-102),
		StartedDate:      "-",
		FinishedDate:     "-",
	}
	m.triggered[workflowID] = append(m.triggered[workflowID], run)
	return &run, nil
}

func (m *mockClient) ListArtifacts(actionID string) ([]Artifact, error) {
	return []Artifact{
		{ID: "art-1", FileName: "build.log", FileType: FileTypeLog, DownloadURL: "mock://artifacts/build.log"},
		{ID: "art-2", FileName: "logs.zip", FileType: FileTypeLogBundle, DownloadURL: "mock://artifacts/logs.zip"},
		{ID: "art-3", FileName: "Result.xcresult", FileType: "XCODE_RESULT_BUNDLE", DownloadURL: "-"},
	}, nil
}

const mockLogContent = `Build started on Xcode Cloud
Resolving package dependencies...
Compiling SampleApp (42 files)
Running 128 tests... all passed
Archive succeeded
`

func (m *mockClient) FetchArtifactContent(a Artifact) (string, error) {
	if a.IsLog() {
		return mockLogContent, nil
	}
	return artifact.BinaryPlaceholder(a.FileName), nil
}

func (m *mockClient) DownloadArtifact(a Artifact) (string, error) {
	placeholder := fmt.Sprintf("mock content for %s\n", a.FileName)
	return artifact.WriteDownload(a.FileName, []byte(placeholder))
}
