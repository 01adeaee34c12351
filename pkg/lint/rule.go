package lint

import "github.com/veldtlab/mdvet/pkg/config"

// Rule defines the interface that all lint rules must implement.
//
// Both Check and Fix are deterministic given identical document content,
// rule configuration, and code-region oracle. Rule instances hold their
// configuration and compiled patterns as immutable state built at
// construction; they are safe to invoke concurrently across independent
// documents.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MV044").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["style"]).
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Check scans the document and returns violations in ascending
	// (line, column) order. It must not mutate the document.
	Check(doc *Document) ([]Violation, error)

	// Fix returns a rewritten copy of the document content with this
	// rule's violations resolved. A violation whose fix range is invalid
	// is skipped with a Notice; the rest of the pass proceeds. When the
	// document has no violations, Fix returns the document's own content
	// unchanged.
	Fix(doc *Document) ([]byte, []Notice, error)
}
