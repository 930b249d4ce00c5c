package main

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLILibrary is a JSON-friendly library summary.
type CLILibrary struct {
	Name          string `json:"name"`
	FunctionCount int    `json:"function_count"`
}

// CLICandidate is a JSON-friendly completion candidate.
type CLICandidate struct {
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// CLISignature is a JSON-friendly signature-help answer.
type CLISignature struct {
	Label       string   `json:"label"`
	Params      []string `json:"params"`
	ActiveParam int      `json:"active_param"`
}
