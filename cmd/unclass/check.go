package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/unclass/app"
	"github.com/ludo-technologies/unclass/domain"
	"github.com/ludo-technologies/unclass/internal/config"
	"github.com/ludo-technologies/unclass/service"
	"github.com/spf13/cobra"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkJSON       bool
	checkQuiet      bool
	checkRecursive  bool
	checkExcludes   []string
	checkConfigPath string
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Fail when compiled class idioms remain, for CI/CD pipelines",
		Long: `Scan for compiled class idioms without rewriting anything.

Exit codes:
  0 - No compiled class idioms found
  1 - Compiled class idiom(s) found
  2 - Scan error (file not found, parse error, etc.)

Examples:
  # Gate a build on a fully modernized tree
  unclass check src/

  # JSON output for machine parsing
  unclass check --json src/

  # Exit code only
  unclass check --quiet src/`,
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false,
		"Suppress output, report through the exit code only")
	cmd.Flags().BoolVarP(&checkRecursive, "recursive", "r", true,
		"Recurse into directories")
	cmd.Flags().StringSliceVar(&checkExcludes, "exclude", nil,
		"Exclude patterns (e.g. 'node_modules', '*.min.js')")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: app.CheckExitFailure, Message: "no paths specified"}
	}

	// Load configuration
	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: app.CheckExitFailure, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	excludes := cfg.Analysis.ExcludePatterns
	if cmd.Flags().Changed("exclude") {
		excludes = checkExcludes
	}

	req := domain.RewriteRequest{
		Paths:                     args,
		Recursive:                 checkRecursive,
		IncludePatterns:           cfg.Analysis.IncludePatterns,
		ExcludePatterns:           excludes,
		DealiasProps:              cfg.Rewrite.DealiasProps,
		CollapseConstructorAccess: cfg.Rewrite.CollapseConstructorAccess,
	}

	uc := app.NewCheckUseCase(service.NewRewriteServiceWithConfig(&cfg.Performance, nil))

	result, err := uc.Execute(context.Background(), req)
	if err != nil {
		return &CheckExitError{Code: app.CheckExitFailure, Message: err.Error()}
	}

	if !checkQuiet {
		format := domain.OutputFormatText
		if checkJSON {
			format = domain.OutputFormatJSON
		}
		formatter := service.NewOutputFormatter()
		if err := formatter.WriteCheck(result, format, os.Stdout); err != nil {
			return &CheckExitError{Code: app.CheckExitFailure, Message: err.Error()}
		}
	}

	if result.ExitCode != app.CheckExitClean {
		return &CheckExitError{Code: result.ExitCode, Message: ""}
	}
	return nil
}
