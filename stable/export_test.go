package stable

// Export internal functions for testing
var (
	FailureOf  = failure[error]
	FailedCall = failedCall
)
