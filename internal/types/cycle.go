package types

import "fmt"

// FileRange represents a location in a model source file
type FileRange struct {
	Filename  string `json:"filename"`
	Line      int    `json:"line"`
	Column    int    `json:"column,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
}

// String returns the range as "filename:line"
func (r FileRange) String() string {
	if r.Filename == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Filename, r.Line)
}

// CycleEdge describes one hop of a reference cycle.
//
// A field edge carries the canonical name of the field that holds the
// reference. An outer edge models the implicit strong reference an inner
// type keeps to its enclosing instance and has no field name.
type CycleEdge struct {
	// From is the canonical name of the referencing type
	From string `json:"from"`

	// To is the canonical name of the referenced type
	To string `json:"to"`

	// Field is the canonical field name holding the reference, empty for
	// outer edges
	Field string `json:"field,omitempty"`

	// Outer is true when the edge is an implicit outer-instance reference
	Outer bool `json:"outer,omitempty"`

	// DeclRange is the source location of the field or inner type declaration
	DeclRange FileRange `json:"pos"`
}

// Describe returns a short human-readable form of the edge
func (e CycleEdge) Describe() string {
	if e.Outer {
		return e.From + " -> " + e.To + " (outer)"
	}
	return e.From + " -> " + e.To + " (" + e.Field + ")"
}
