package slack

// Export internal functions for testing
var (
	// TruncateToMaxBytes is exported for testing UTF-8 truncation
	TruncateToMaxBytes = truncateToMaxBytes

	// SplitSections is exported for testing block splitting
	SplitSections = splitSections
)
