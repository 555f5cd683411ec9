package model

import "time"

// User is a person who logs time.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Namespace is the top of the ownership chain (a group of projects).
type Namespace struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Project belongs to exactly one Namespace.
type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	NamespaceID int    `json:"namespace_id"`
}

// Issue belongs to exactly one Project.
type Issue struct {
	ID          int        `json:"id"`
	AuthorID    *int       `json:"author_id,omitempty"`
	ProjectID   int        `json:"project_id"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// MergeRequest targets exactly one Project.
type MergeRequest struct {
	ID              int        `json:"id"`
	AuthorID        *int       `json:"author_id,omitempty"`
	TargetProjectID int        `json:"target_project_id"`
	TargetBranch    string     `json:"target_branch"`
	SourceBranch    string     `json:"source_branch"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	Title           string     `json:"title"`
}
