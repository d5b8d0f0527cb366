package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlkit/smoke/internal/suite"
)

// ValidationError describes one problem found in a suite file.
type ValidationError struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <suite.yaml...>",
		Short: "Validate suite files without running them",
		Long: `Validate suite YAML files without running anything.

Each file is checked against the suite schema (required fields, types,
no unknown fields) and then against the structural rules the schema
cannot express, like duplicate case labels. Every file is checked even
when an earlier one is invalid.

Exit codes:
  0 - All files valid
  1 - One or more files invalid
  2 - Command error (unreadable file)

Examples:
  smoke validate extras.yaml
  smoke validate nightly.yaml extras.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	var validationErrors []ValidationError
	for _, path := range args {
		formatter.VerboseLog("Validating %s", path)

		data, err := os.ReadFile(path)
		if err != nil {
			// An unreadable file is a command error, not a finding.
			return outputValidateError(formatter, ErrCodeSuiteRead, fmt.Sprintf("failed to read suite file: %v", err))
		}

		if err := suite.ValidateSchema(path, data); err != nil {
			validationErrors = append(validationErrors, ValidationError{
				File:    path,
				Code:    ErrCodeSchema,
				Message: err.Error(),
			})
			// Structural checks would only restate the schema finding.
			continue
		}

		if _, err := suite.Parse(data); err != nil {
			validationErrors = append(validationErrors, ValidationError{
				File:    path,
				Code:    ErrCodeStructure,
				Message: err.Error(),
			})
		}
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, len(args), validationErrors)
	}

	return outputValidateSuccess(formatter, len(args))
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, files int) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true, Files: files}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s %d suite file(s) valid\n", passMark(), files)
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Unreadable input is a command-level error (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs the collected findings.
func outputValidationErrors(formatter *OutputFormatter, files int, errs []ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Files:  files,
			Errors: errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintf(formatter.Writer, "%s Validation failed\n", failMark())
	fmt.Fprintln(formatter.Writer)

	for _, e := range errs {
		fmt.Fprintln(formatter.Writer, e.File)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", e.Code, e.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
