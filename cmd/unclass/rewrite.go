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

var (
	rewriteOutputFormat  string
	rewriteJSONOutput    bool
	rewriteWrite         bool
	rewriteOutDir        string
	rewriteDryRun        bool
	rewriteRecursive     bool
	rewriteIncludes      []string
	rewriteExcludes      []string
	rewriteConfigPath    string
	rewriteNoProgress    bool
	rewriteKeepAliases   bool
	rewriteKeepConstruct bool
)

func rewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite [path...]",
		Short: "Rewrite compiled class idioms into class declarations",
		Long: `Rewrite the function-and-prototype output of class-to-ES5 compilers
back into ES6 class declarations.

By default the rewritten source is printed to stdout so the command
composes in a pipe. Use --write to rewrite files in place, --out-dir
to mirror rewritten files into a directory, or --dry-run to report
what would change.

Examples:
  # Print rewritten source
  unclass rewrite legacy.js

  # Rewrite a tree in place
  unclass rewrite --write src/

  # Mirror into a directory, keep originals untouched
  unclass rewrite --out-dir modern/ src/

  # Report only, as JSON
  unclass rewrite --dry-run --json src/`,
		RunE: runRewrite,
	}

	cmd.Flags().StringVarP(&rewriteOutputFormat, "format", "f", "text",
		"Report format: text, json, yaml")
	cmd.Flags().BoolVar(&rewriteJSONOutput, "json", false,
		"Output report as JSON (shorthand for --format json)")
	cmd.Flags().BoolVarP(&rewriteWrite, "write", "w", false,
		"Rewrite files in place")
	cmd.Flags().StringVar(&rewriteOutDir, "out-dir", "",
		"Write rewritten files into this directory")
	cmd.Flags().BoolVar(&rewriteDryRun, "dry-run", false,
		"Report what would change without writing anything")
	cmd.Flags().BoolVarP(&rewriteRecursive, "recursive", "r", true,
		"Recurse into directories")
	cmd.Flags().StringSliceVar(&rewriteIncludes, "include", nil,
		"Include patterns (e.g. '**/*.js')")
	cmd.Flags().StringSliceVar(&rewriteExcludes, "exclude", nil,
		"Exclude patterns (e.g. 'node_modules', '*.min.js')")
	cmd.Flags().StringVarP(&rewriteConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&rewriteNoProgress, "no-progress", false,
		"Disable progress output")
	cmd.Flags().BoolVar(&rewriteKeepAliases, "keep-aliases", false,
		"Do not fold this/this.props alias variables into their uses")
	cmd.Flags().BoolVar(&rewriteKeepConstruct, "keep-constructor-access", false,
		"Do not collapse this.constructor member access")

	return cmd
}

func runRewrite(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	loader := service.NewConfigurationLoader()

	var base *domain.RewriteRequest
	if rewriteConfigPath != "" {
		loaded, err := loader.LoadConfig(rewriteConfigPath)
		if err != nil {
			return err
		}
		base = loaded
	} else {
		base = loader.LoadDefaultConfig()
	}

	// Flag overrides
	override := &domain.RewriteRequest{
		Paths:           args,
		Write:           rewriteWrite,
		OutDir:          rewriteOutDir,
		DryRun:          rewriteDryRun,
		IncludePatterns: rewriteIncludes,
		ExcludePatterns: rewriteExcludes,
		ConfigPath:      rewriteConfigPath,
		NoProgress:      rewriteNoProgress,
	}
	if rewriteJSONOutput {
		override.OutputFormat = domain.OutputFormatJSON
	} else if cmd.Flags().Changed("format") {
		override.OutputFormat = domain.OutputFormat(rewriteOutputFormat)
	}

	req := loader.MergeConfig(base, override)
	req.OutputWriter = os.Stdout

	if cmd.Flags().Changed("recursive") {
		req.Recursive = rewriteRecursive
	}
	if rewriteKeepAliases {
		req.DealiasProps = false
	}
	if rewriteKeepConstruct {
		req.CollapseConstructorAccess = false
	}

	if err := loader.ValidateConfig(req); err != nil {
		return err
	}

	// Full config again for the ambient sections the request doesn't carry
	cfg, err := config.LoadConfigWithTarget(rewriteConfigPath, args[0])
	if err != nil {
		cfg = config.DefaultConfig()
	}

	progressEnabled := !req.NoProgress && req.OutputFormat == domain.OutputFormatText &&
		(req.Write || req.OutDir != "" || req.DryRun)
	pm := service.NewProgressManager(progressEnabled)
	defer pm.Close()

	svc := service.NewRewriteServiceWithConfig(&cfg.Performance, pm)

	uc, err := app.NewRewriteUseCaseBuilder().
		WithService(svc).
		WithFormatter(service.NewOutputFormatter()).
		WithFileHelper(app.NewFileHelperWithGitignore(cfg.Analysis.RespectGitignore)).
		Build()
	if err != nil {
		return err
	}

	response, err := uc.Execute(context.Background(), *req)
	if err != nil {
		return err
	}

	// Per-file failures surface on stderr without failing the run
	if req.OutputFormat == domain.OutputFormatText {
		for _, e := range response.Errors {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", e)
		}
	}

	return nil
}
