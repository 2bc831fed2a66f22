package appstore

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The API speaks JSON:API: every response is a document with a data element
// (object or array), and relationship-only fields live in an included
// side-list. Decoding is tolerant: unknown fields are ignored and absent
// attributes fall back to per-field defaults.

type wireDocument struct {
	Data     json.RawMessage `json:"data"`
	Included []wireResource  `json:"included"`
}

type wireResource struct {
	Type          string                      `json:"type"`
	ID            string                      `json:"id"`
	Attributes    wireAttributes              `json:"attributes"`
	Relationships map[string]wireRelationship `json:"relationships"`
}

// wireAttributes is the union of the attribute fields consumed across
// endpoints; each conversion reads only the fields its resource type carries.
type wireAttributes struct {
	Name              string `json:"name"`
	BundleID          string `json:"bundleId"`
	IsEnabled         *bool  `json:"isEnabled"`
	Number            *int   `json:"number"`
	CanonicalName     string `json:"canonicalName"`
	ExecutionProgress string `json:"executionProgress"`
	CompletionStatus  string `json:"completionStatus"`
	ActionType        string `json:"actionType"`
	CreatedDate       string `json:"createdDate"`
	StartedDate       string `json:"startedDate"`
	FinishedDate      string `json:"finishedDate"`
	FileName          string `json:"fileName"`
	FileType          string `json:"fileType"`
	DownloadURL       string `json:"downloadUrl"`
}

type wireRelationship struct {
	Data *wireIdentifier `json:"data"`
}

type wireIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func parseDocument(body []byte) (*wireDocument, error) {
	var doc wireDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &doc, nil
}

func (d *wireDocument) resources() ([]wireResource, error) {
	var list []wireResource
	if err := json.Unmarshal(d.Data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return list, nil
}

func (d *wireDocument) resource() (*wireResource, error) {
	var res wireResource
	if err := json.Unmarshal(d.Data, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &res, nil
}

// lookupIncluded resolves a relationship against the included side-list.
func (d *wireDocument) lookupIncluded(res wireResource, relationship string) *wireResource {
	rel, ok := res.Relationships[relationship]
	if !ok || rel.Data == nil {
		return nil
	}
	for i := range d.Included {
		if d.Included[i].Type == rel.Data.Type && d.Included[i].ID == rel.Data.ID {
			return &d.Included[i]
		}
	}
	return nil
}

func (d *wireDocument) product(res wireResource) Product {
	bundleID := res.Attributes.BundleID
	if bundleID == "" {
		// Products inline almost nothing; the bundle id lives on the
		// related app resource.
		if app := d.lookupIncluded(res, "app"); app != nil {
			bundleID = app.Attributes.BundleID
		}
	}
	return Product{
		ID:       res.ID,
		Name:     orDash(res.Attributes.Name),
		BundleID: orDash(bundleID),
	}
}

func (d *wireDocument) workflow(res wireResource) Workflow {
	enabled := true
	if res.Attributes.IsEnabled != nil {
		enabled = *res.Attributes.IsEnabled
	}
	return Workflow{
		ID:      res.ID,
		Name:    orDash(res.Attributes.Name),
		Enabled: enabled,
	}
}

func (d *wireDocument) buildRun(res wireResource) BuildRun {
	number := "-"
	if res.Attributes.Number != nil {
		number = strconv.Itoa(*res.Attributes.Number)
	}
	branch := ""
	if ref := d.lookupIncluded(res, "sourceBranchOrTag"); ref != nil {
		branch = ref.Attributes.Name
		if branch == "" {
			branch = ref.Attributes.CanonicalName
		}
	}
	return BuildRun{
		ID:               res.ID,
		Number:           number,
		Branch:           orDash(branch),
		Status:           orDash(res.Attributes.ExecutionProgress),
		CompletionStatus: orDash(res.Attributes.CompletionStatus),
		CreatedDate:      orDash(res.Attributes.CreatedDate),
		StartedDate:      orDash(res.Attributes.StartedDate),
		FinishedDate:     orDash(res.Attributes.FinishedDate),
	}
}

func (d *wireDocument) buildAction(res wireResource) BuildAction {
	return BuildAction{
		ID:           res.ID,
		Name:         orDash(res.Attributes.Name),
		ActionType:   orDash(res.Attributes.ActionType),
		Status:       orDash(res.Attributes.ExecutionProgress),
		StartedDate:  orDash(res.Attributes.StartedDate),
		FinishedDate: orDash(res.Attributes.FinishedDate),
	}
}

func (d *wireDocument) artifact(res wireResource) Artifact {
	return Artifact{
		ID:          res.ID,
		FileName:    res.Attributes.FileName,
		FileType:    orDash(res.Attributes.FileType),
		DownloadURL: orDash(res.Attributes.DownloadURL),
	}
}
