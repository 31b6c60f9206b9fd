package main

// Exit codes returned by sgr commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error / semantic index not built
	ExitDataError   = 3 // Graph store unreachable / Ollama not available
	ExitEmptyCorpus = 4 // No documents available to index
)
