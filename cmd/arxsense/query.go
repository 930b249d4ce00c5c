package main

import (
	"os"

	"github.com/spf13/cobra"
)

var flagCursor int

var libsCmd = &cobra.Command{
	Use:   "libs",
	Short: "List loaded libraries and their function counts",
	Args:  cobra.NoArgs,
	RunE:  runLibs,
}

var completeCmd = &cobra.Command{
	Use:   "complete <line>",
	Short: "Completion candidates for a line of ARX source",
	Long:  "Classifies the cursor position in the given line and prints keyword, library, or member completion candidates. The cursor defaults to the end of the line.",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

var signatureCmd = &cobra.Command{
	Use:   "signature <line>",
	Short: "Signature help for a call site in a line of ARX source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSignature,
}

func init() {
	completeCmd.Flags().IntVar(&flagCursor, "cursor", -1, "cursor offset into the line (default: end of line)")
	signatureCmd.Flags().IntVar(&flagCursor, "cursor", -1, "cursor offset into the line (default: end of line)")
}

func runLibs(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	sums, err := engine.Libraries()
	if err != nil {
		return err
	}
	libs := make([]CLILibrary, 0, len(sums))
	for _, s := range sums {
		libs = append(libs, CLILibrary{Name: s.Name, FunctionCount: s.FunctionCount})
	}

	if flagFormat == "json" {
		return outputJSON("libs", libs)
	}
	formatLibrariesText(os.Stdout, libs)
	return nil
}

func runComplete(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	line := args[0]
	cands, err := engine.Query().CompletionsAt(line, cursorFor(line))
	if err != nil {
		return err
	}
	out := make([]CLICandidate, 0, len(cands))
	for _, c := range cands {
		out = append(out, CLICandidate{Label: c.Label, Kind: string(c.Kind), Detail: c.Detail})
	}

	if flagFormat == "json" {
		return outputJSON("complete", out)
	}
	formatCandidatesText(os.Stdout, out)
	return nil
}

func runSignature(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	line := args[0]
	sig, err := engine.Query().SignatureHelpAt(line, cursorFor(line))
	if err != nil {
		return err
	}

	var out *CLISignature
	if sig != nil {
		out = &CLISignature{Label: sig.Label, Params: sig.Params, ActiveParam: sig.ActiveParam}
	}

	if flagFormat == "json" {
		return outputJSON("signature", out)
	}
	formatSignatureText(os.Stdout, out)
	return nil
}

// cursorFor applies the --cursor flag, defaulting to the end of the line.
func cursorFor(line string) int {
	if flagCursor < 0 || flagCursor > len(line) {
		return len(line)
	}
	return flagCursor
}
