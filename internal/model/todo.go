package model

import "github.com/google/uuid"

// DefaultName is the label given to todos created by the add action.
const DefaultName = "New Todo"

// Todo is the domain model for a todo entry.
// ID is assigned once and never changes; Name is free text.
type Todo struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// IDFunc generates opaque todo identifiers.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string { return uuid.NewString() }
