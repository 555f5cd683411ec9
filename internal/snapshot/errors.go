package snapshot

import (
	"errors"
	"fmt"
)

// ErrUnresolved is matched by every UnresolvedError.
var ErrUnresolved = errors.New("unresolved reference")

// ErrNoSnapshot is returned when a report is requested before any import.
var ErrNoSnapshot = errors.New("no data imported")

// Entity kinds named by UnresolvedError.
const (
	KindUser         = "user"
	KindIssue        = "issue"
	KindMergeRequest = "merge request"
	KindProject      = "project"
	KindNamespace    = "namespace"
	KindLabel        = "label"
)

// UnresolvedError reports an id that does not exist in its target index.
// Ref names the record holding the dangling id.
type UnresolvedError struct {
	Kind string
	ID   int
	Ref  string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: %s %d not found", e.Ref, e.Kind, e.ID)
}

func (e *UnresolvedError) Is(target error) bool { return target == ErrUnresolved }
