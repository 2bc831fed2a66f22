package appstore

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/havard/lazycloud/internal/artifact"
	"github.com/havard/lazycloud/internal/auth"
	"github.com/havard/lazycloud/internal/config"
)

// liveClient talks to the App Store Connect API, signing a fresh token per
// request and retrying transient failures.
type liveClient struct {
	baseURL    string
	creds      *auth.Credentials
	httpClient *http.Client
	now        func() time.Time
	sleep      func(time.Duration)
}

// ClientOption allows configuring the live client
type ClientOption func(*liveClient)

// WithBaseURL overrides the API host (used by tests)
func WithBaseURL(baseURL string) ClientOption {
	return func(c *liveClient) {
		c.baseURL = baseURL
	}
}

func newLiveClient(creds *auth.Credentials, opts ...ClientOption) *liveClient {
	c := &liveClient{
		baseURL:    config.DefaultBaseURL,
		creds:      creds,
		httpClient: &http.Client{},
		now:        time.Now,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *liveClient) MockMode() bool { return false }

// resetTransport rebuilds the transport handle after a transient failure so
// a wedged connection pool is not reused.
func (c *liveClient) resetTransport() {
	c.httpClient.CloseIdleConnections()
	c.httpClient = &http.Client{}
}

// do performs one logical request with up to config.MaxAttempts attempts.
// target is either an absolute URL (artifact downloads) or a path under the
// API base.
func (c *liveClient) do(method, target string, payload []byte) ([]byte, error) {
	reqURL := target
	if strings.HasPrefix(target, "/") {
		reqURL = c.baseURL + target
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		body, err := c.attempt(method, reqURL, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err

		delay, retry := shouldRetry(attempt, err)
		if !retry {
			return nil, lastErr
		}
		c.resetTransport()
		c.sleep(delay)
	}
}

func (c *liveClient) attempt(method, reqURL string, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Tokens are short-lived; sign a fresh one per request.
	token, err := auth.GenerateToken(c.creds, c.now())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *liveClient) getDocument(path string) (*wireDocument, error) {
	body, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return parseDocument(body)
}

func (c *liveClient) ListProducts() ([]Product, error) {
	doc, err := c.getDocument("/v1/ciProducts?include=app")
	if err != nil {
		return nil, err
	}
	resources, err := doc.resources()
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(resources))
	for _, res := range resources {
		products = append(products, doc.product(res))
	}
	return products, nil
}

func (c *liveClient) ListWorkflows(productID string) ([]Workflow, error) {
	path := fmt.Sprintf("/v1/ciProducts/%s/workflows", url.PathEscape(productID))
	doc, err := c.getDocument(path)
	if err != nil {
		return nil, err
	}
	resources, err := doc.resources()
	if err != nil {
		return nil, err
	}
	workflows := make([]Workflow, 0, len(resources))
	for _, res := range resources {
		workflows = append(workflows, doc.workflow(res))
	}
	return workflows, nil
}

func (c *liveClient) ListBuildRuns(workflowID string) ([]BuildRun, error) {
	path := fmt.Sprintf("/v1/ciWorkflows/%s/buildRuns?include=sourceBranchOrTag&limit=%d",
		url.PathEscape(workflowID), config.BuildRunPageSize)
	doc, err := c.getDocument(path)
	if err != nil {
		return nil, err
	}
	resources, err := doc.resources()
	if err != nil {
		return nil, err
	}
	runs := make([]BuildRun, 0, len(resources))
	for _, res := range resources {
		runs = append(runs, doc.buildRun(res))
	}
	SortBuildRuns(runs)
	return runs, nil
}

func (c *liveClient) GetBuildRun(buildRunID string) (*BuildRun, error) {
	path := fmt.Sprintf("/v1/ciBuildRuns/%s?include=sourceBranchOrTag", url.PathEscape(buildRunID))
	doc, err := c.getDocument(path)
	if err != nil {
		return nil, err
	}
	res, err := doc.resource()
	if err != nil {
		return nil, err
	}
	run := doc.buildRun(*res)
	return &run, nil
}

func (c *liveClient) ListBuildActions(buildRunID string) ([]BuildAction, error) {
	path := fmt.Sprintf("/v1/ciBuildRuns/%s/actions", url.PathEscape(buildRunID))
	doc, err := c.getDocument(path)
	if err != nil {
		return nil, err
	}
	resources, err := doc.resources()
	if err != nil {
		return nil, err
	}
	actions := make([]BuildAction, 0, len(resources))
	for _, res := range resources {
		actions = append(actions, doc.buildAction(res))
	}
	return actions, nil
}

func (c *liveClient) CreateBuildRun(workflowID string) (*BuildRun, error) {
	payload := fmt.Sprintf(
		`{"data":{"type":"ciBuildRuns","relationships":{"workflow":{"data":{"type":"ciWorkflows","id":%q}}}}}`,
		workflowID)
	body, err := c.do(http.MethodPost, "/v1/ciBuildRuns", []byte(payload))
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}
	res, err := doc.resource()
	if err != nil {
		return nil, err
	}
	run := doc.buildRun(*res)
	return &run, nil
}

func (c *liveClient) ListArtifacts(actionID string) ([]Artifact, error) {
	path := fmt.Sprintf("/v1/ciBuildActions/%s/artifacts", url.PathEscape(actionID))
	doc, err := c.getDocument(path)
	if err != nil {
		return nil, err
	}
	resources, err := doc.resources()
	if err != nil {
		return nil, err
	}
	artifacts := make([]Artifact, 0, len(resources))
	for _, res := range resources {
		artifacts = append(artifacts, doc.artifact(res))
	}
	return artifacts, nil
}

func (c *liveClient) fetchRaw(a Artifact) ([]byte, error) {
	if a.DownloadURL == "" || a.DownloadURL == "-" {
		return nil, fmt.Errorf("artifact %q has no download URL", a.FileName)
	}
	return c.do(http.MethodGet, a.DownloadURL, nil)
}

func (c *liveClient) FetchArtifactContent(a Artifact) (string, error) {
	data, err := c.fetchRaw(a)
	if err != nil {
		return "", err
	}
	if a.FileType == FileTypeLogBundle || artifact.LooksLikeZip(data) {
		return artifact.ExtractLogText(data), nil
	}
	if artifact.IsText(data) {
		return string(data), nil
	}
	return artifact.BinaryPlaceholder(a.FileName), nil
}

func (c *liveClient) DownloadArtifact(a Artifact) (string, error) {
	data, err := c.fetchRaw(a)
	if err != nil {
		return "", err
	}
	return artifact.WriteDownload(a.FileName, data)
}
