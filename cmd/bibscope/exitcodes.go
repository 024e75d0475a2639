package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no workspace, invalid config)
	ExitDataError   = 3 // Data error (unreadable or malformed export, corrupt records)
	ExitAuthError   = 4 // Missing or rejected completion API key
	ExitAPIError    = 5 // Completion endpoint error (rate limit, network)
)
