package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gedtools/gedscrub/internal/anonymizer"
)

// AnonymizeOptions holds flags for the anonymize command.
type AnonymizeOptions struct {
	*RootOptions
	KeepDates  bool
	KeepPlaces bool
	RulesPath  string
	Force      bool
}

// AnonymizeResult is the summary payload printed after a run.
type AnonymizeResult struct {
	Output       string `json:"output"`
	UniqueNames  int    `json:"unique_names"`
	UniquePlaces int    `json:"unique_places"`
	Lines        int    `json:"lines"`
}

// NewAnonymizeCommand creates the anonymize command.
func NewAnonymizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnonymizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "anonymize <input.ged> <output.ged>",
		Short: "Anonymize a GEDCOM file for bug reporting",
		Long: `Anonymize personal information in a GEDCOM file while preserving structure.

Names become "Person N", places become "Place N", dates collapse to
placeholder dates, and free text, address, and contact fields are redacted.
Levels, cross-references, and record types survive unchanged.

Example:
  gedscrub anonymize family.ged family_anon.ged
  gedscrub anonymize input.ged output.ged --keep-dates --keep-places
  gedscrub anonymize input.ged output.ged --rules site-rules.yaml`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnonymize(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.KeepDates, "keep-dates", false, "preserve dates in the output")
	cmd.Flags().BoolVar(&opts.KeepPlaces, "keep-places", false, "preserve place names in the output")
	cmd.Flags().StringVar(&opts.RulesPath, "rules", "", "path to a YAML rule file extending the tag policies")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite the destination without asking")

	return cmd
}

func runAnonymize(opts *AnonymizeOptions, inputPath, outputPath string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler).With("run_id", uuid.NewString())

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var rules *anonymizer.RuleSet
	if opts.RulesPath != "" {
		var err error
		rules, err = anonymizer.LoadRules(opts.RulesPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load rules", err)
		}
		logger.Debug("rules loaded", "path", opts.RulesPath)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("input file not found: %s", inputPath), err)
	}

	if _, err := os.Stat(outputPath); err == nil && !opts.Force {
		ok, err := confirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), outputPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "overwrite confirmation failed", err)
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	src, err := openInput(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open input", err)
	}
	defer src.Close()

	dst, err := os.Create(outputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create output", err)
	}

	logger.Debug("anonymizing", "input", inputPath, "output", outputPath,
		"keep_dates", opts.KeepDates, "keep_places", opts.KeepPlaces)

	engine := anonymizer.New(anonymizer.Options{
		KeepDates:  opts.KeepDates,
		KeepPlaces: opts.KeepPlaces,
		Rules:      rules,
		Logger:     logger,
	})
	if err := engine.Process(src, dst); err != nil {
		dst.Close()
		return WrapExitError(ExitCommandError, "anonymization failed", err)
	}
	if err := dst.Close(); err != nil {
		return WrapExitError(ExitCommandError, "failed to finish output", err)
	}

	summary := engine.Summary()
	result := AnonymizeResult{
		Output:       outputPath,
		UniqueNames:  summary.UniqueNames,
		UniquePlaces: summary.UniquePlaces,
		Lines:        summary.Lines,
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Anonymization complete:")
	fmt.Fprintf(out, "  - %d unique names anonymized\n", result.UniqueNames)
	fmt.Fprintf(out, "  - %d unique places anonymized\n", result.UniquePlaces)
	fmt.Fprintf(out, "  - %d lines processed\n", result.Lines)
	fmt.Fprintf(out, "  - Output saved to: %s\n", outputPath)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Please review the output file before sharing!")
	return nil
}
