package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/wsconfig/pkg/config"
)

// ErrValidationFailed is returned when any validated path has errors.
var ErrValidationFailed = errors.New("validation failed")

var validatePattern string

// validateReport is the validation outcome for one path.
type validateReport struct {
	Path     string                   `json:"path"`
	Valid    bool                     `json:"valid"`
	Files    []string                 `json:"files,omitempty"`
	Errors   []config.ValidationError `json:"errors,omitempty"`
	Warnings []config.ValidationError `json:"warnings,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate PATH...",
	Short: "Validate configuration files",
	Long: `Validate configuration files without installing anything.

A file path is parsed and checked. A directory is searched with --pattern
(doublestar syntax) and the merged configurations are checked together, so
duplicate names across files are reported.

This command checks:
  - XML and YAML syntax
  - YAML schema (field names and types)
  - Required configuration names and handler classes
  - Duplicate configuration names
  - Protocol-binding tokens`,
	Example: `  wsconfig validate client-config.xml
  wsconfig validate --pattern '**/*.xml' ./conf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports := make([]validateReport, 0, len(args))
		for _, path := range args {
			reports = append(reports, validatePath(path, validatePattern))
		}

		err := printResult(cmd, reports, func() {
			out := cmd.OutOrStdout()
			for _, r := range reports {
				status := "OK"
				if !r.Valid {
					status = "INVALID"
				}
				fmt.Fprintf(out, "%s: %s\n", r.Path, status)
				for _, e := range r.Errors {
					fmt.Fprintf(out, "  error: %s\n", e.Error())
				}
				for _, w := range r.Warnings {
					fmt.Fprintf(out, "  warning: %s\n", w.Error())
				}
			}
		})
		if err != nil {
			return err
		}

		for _, r := range reports {
			if !r.Valid {
				return ErrValidationFailed
			}
		}
		return nil
	},
}

func validatePath(path, pattern string) validateReport {
	report := validateReport{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		report.Errors = append(report.Errors, config.ValidationError{Message: err.Error()})
		return report
	}

	var root *config.Root
	if info.IsDir() {
		loader := &config.DirectoryLoader{Path: path, Pattern: pattern}
		result, err := loader.Load()
		if err != nil {
			report.Errors = append(report.Errors, config.ValidationError{Message: err.Error()})
			return report
		}
		report.Files = result.Files
		for _, le := range result.Errors {
			report.Errors = append(report.Errors, config.ValidationError{Path: le.Path, Message: le.Err.Error()})
		}
		root = result.Root
	} else {
		root, err = config.LoadFile(path)
		if err != nil {
			report.Errors = append(report.Errors, config.ValidationError{Message: err.Error()})
			return report
		}
	}

	result := config.Validate(root)
	report.Errors = append(report.Errors, result.Errors...)
	report.Warnings = result.Warnings
	report.Valid = len(report.Errors) == 0
	return report
}

func init() {
	validateCmd.Flags().StringVar(&validatePattern, "pattern", config.DefaultPattern, "File pattern used for directories")
	rootCmd.AddCommand(validateCmd)
}
