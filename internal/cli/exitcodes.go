package cli

// Exit codes returned by the mdvet binary.
const (
	// ExitSuccess means the run completed with no violations.
	ExitSuccess = 0

	// ExitIssuesFound means linting completed but violations remain.
	ExitIssuesFound = 1

	// ExitError means the run failed before completing (bad config,
	// unreadable file, internal error).
	ExitError = 2
)
