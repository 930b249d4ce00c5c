package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// validateFormat rejects unknown --format values before any command runs.
func validateFormat(format string) error {
	switch format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("invalid format %q: must be json or text", format)
	}
}

// outputJSON writes the standard result envelope to stdout.
func outputJSON(command string, results any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResult{Command: command, Results: results})
}

// formatLibrariesText formats library summaries as aligned columns.
func formatLibrariesText(w io.Writer, libs []CLILibrary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LIBRARY\tFUNCTIONS")
	for _, lib := range libs {
		fmt.Fprintf(tw, "%s\t%d\n", lib.Name, lib.FunctionCount)
	}
	tw.Flush()
}

// formatCandidatesText formats completion candidates as aligned columns.
func formatCandidatesText(w io.Writer, cands []CLICandidate) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tKIND\tDETAIL")
	for _, c := range cands {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Label, c.Kind, c.Detail)
	}
	tw.Flush()
}

// formatSignatureText formats a signature-help answer, marking the active
// parameter.
func formatSignatureText(w io.Writer, sig *CLISignature) {
	if sig == nil {
		fmt.Fprintln(w, "no signature")
		return
	}
	fmt.Fprintln(w, sig.Label)
	for i, p := range sig.Params {
		mark := " "
		if i == sig.ActiveParam {
			mark = ">"
		}
		fmt.Fprintf(w, "  %s %d: %s\n", mark, i, p)
	}
}
