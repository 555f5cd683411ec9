package model

import "fmt"

// Label represents a label row from the export. Its description may carry a
// product tag token (see ProductFromDescription).
type Label struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// TargetType identifies what kind of entity a LabelLink points at.
type TargetType string

const (
	TargetIssue        TargetType = "Issue"
	TargetMergeRequest TargetType = "MergeRequest"
)

var validTargetTypes = []TargetType{
	TargetIssue,
	TargetMergeRequest,
}

// ValidateTargetType returns an error if t is not a recognized link target.
func ValidateTargetType(t TargetType) error {
	for _, v := range validTargetTypes {
		if t == v {
			return nil
		}
	}
	return fmt.Errorf("invalid target type %q: must be one of %v", t, validTargetTypes)
}

// LabelLink is one row of the many-to-many join between labels and
// issues or merge requests.
type LabelLink struct {
	ID         int        `json:"id"`
	LabelID    int        `json:"label_id"`
	TargetID   int        `json:"target_id"`
	TargetType TargetType `json:"target_type"`
}
