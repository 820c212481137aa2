package cli

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gedtools/gedscrub/internal/gedcom"
)

// MalformedLine identifies a line that failed the structural grammar.
type MalformedLine struct {
	Line    int    `json:"line"`    // 1-based
	Preview string `json:"preview"` // at most 50 characters
}

// CheckResult summarizes a structural scan of one file.
type CheckResult struct {
	Valid     bool            `json:"valid"`
	Lines     int             `json:"lines"`
	Records   map[string]int  `json:"records"` // level-0 tag -> count
	Malformed []MalformedLine `json:"malformed,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <input.ged>",
		Short: "Check a GEDCOM file against the structural grammar",
		Long: `Scan a GEDCOM file and report lines that fail the structural grammar
<level> <xref>? <tag> <value>?, plus a count of level-0 records by tag.

The anonymizer passes malformed lines through unchanged, so check is a dry
run for spotting header or encoding problems before sharing a file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, inputPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	src, err := openInput(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open input", err)
	}
	defer src.Close()

	result := CheckResult{Records: map[string]int{}}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		result.Lines++
		if strings.TrimSpace(text) == "" {
			continue
		}
		line, ok := gedcom.Parse(text)
		if !ok {
			result.Malformed = append(result.Malformed, MalformedLine{
				Line:    result.Lines,
				Preview: truncate(text, 50),
			})
			continue
		}
		if line.Level == "0" {
			result.Records[line.Tag]++
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	result.Valid = len(result.Malformed) == 0
	formatter.VerboseLog("scanned %d line(s), %d record(s), %d malformed",
		result.Lines, len(result.Records), len(result.Malformed))

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printCheckResult(formatter, inputPath, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d malformed line(s) in %s", len(result.Malformed), inputPath))
	}
	return nil
}

func printCheckResult(formatter *OutputFormatter, inputPath string, result CheckResult) {
	w := formatter.Writer
	fmt.Fprintf(w, "Checked %s: %d lines\n", inputPath, result.Lines)

	tags := make([]string, 0, len(result.Records))
	for tag := range result.Records {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(w, "  %s: %d\n", tag, result.Records[tag])
	}

	for _, m := range result.Malformed {
		fmt.Fprintf(w, "Line %d doesn't match GEDCOM format: %q\n", m.Line, m.Preview)
	}
	if result.Valid {
		fmt.Fprintln(w, "No structural problems found.")
	}
}

// truncate limits a string to n runes for previews.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
