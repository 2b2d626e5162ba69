package cnxml

import (
	"errors"
	"fmt"
)

// DiagnosticCode classifies a recoverable parse issue.
type DiagnosticCode string

const (
	// DiagMalformedStructure marks an inner node that could not be classified
	// into any known content node variant and was skipped.
	DiagMalformedStructure DiagnosticCode = "malformed_structure"
	// DiagUnresolvedReference marks a term or link whose target has no
	// matching glossary entry or section/figure id. The reference is retained.
	DiagUnresolvedReference DiagnosticCode = "unresolved_reference"
	// DiagDuplicateTerm marks a glossary term that collided with an earlier
	// entry; the first occurrence wins.
	DiagDuplicateTerm DiagnosticCode = "duplicate_term"
)

// Diagnostic records a non-fatal issue found during parsing. Partial-success
// parses return the module plus a non-empty diagnostics list; nothing is
// dropped silently.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Node    string         `json:"node,omitempty"`   // element name or id
	Offset  int64          `json:"offset,omitempty"` // approximate byte offset in source
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Node != "" {
		return fmt.Sprintf("%s at %s (offset %d): %s", d.Code, d.Node, d.Offset, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Fatal parse errors. Callers can test with errors.Is.
var (
	// ErrDepthExceeded means section or list nesting breached the configured
	// safety bound; the whole module parse fails rather than risking
	// unbounded recursion on adversarial input.
	ErrDepthExceeded = errors.New("nesting depth exceeded")

	// ErrMissingMetadata means the module lacks a required metadata field
	// (title, content id, or uuid) and cannot be constructed.
	ErrMissingMetadata = errors.New("missing required metadata")
)
