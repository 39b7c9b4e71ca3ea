package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tscore-lang/tscore/pkg/tscheck"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Type-check one or more source files",
	Long: `Parse and type-check source files, reporting every diagnostic
collected during either phase. Exits non-zero if any file has errors.

With no arguments, checks every file matched by the project config's
include/exclude globs (./tscheck.yaml by default, or --config).`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "override the project config's strict setting to true")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	if checkStrict {
		cfg.Strict = true
	}

	files := args
	if len(files) == 0 {
		files, err = expandIncludes(cfg.Include, cfg.Exclude)
		if err != nil {
			return err
		}
	}

	hadErrors := false
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", file, err)
		}

		engine, err := tscheck.New(tscheck.WithFileName(file), tscheck.WithTypeCheck(cfg.TypeCheck))
		if err != nil {
			return err
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "checking %s...\n", file)
		}

		_, err = engine.Check(string(content))
		if err != nil {
			cerr, ok := err.(*tscheck.CompileError)
			if !ok {
				return err
			}
			hadErrors = true
			reportCheckErrors(file, cerr)
		}
	}

	if hadErrors {
		return fmt.Errorf("type checking failed")
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "checked %d file(s), no errors\n", len(files))
	}
	return nil
}

func reportCheckErrors(file string, cerr *tscheck.CompileError) {
	if jsonOutput {
		doc, err := diagnosticsJSON(cerr.Errors)
		if err == nil {
			fmt.Println(doc)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "%s: %s errors:\n", file, cerr.Stage)
	for _, d := range cerr.Errors {
		fmt.Fprintf(os.Stderr, "  %s:%d:%d: %s: %s\n", file, d.Line, d.Column, d.Kind, d.Message)
	}
}

func expandIncludes(include, exclude []string) ([]string, error) {
	excluded := make(map[string]bool, len(exclude))
	for _, pattern := range exclude {
		matches, _ := filepath.Glob(pattern)
		for _, m := range matches {
			excluded[m] = true
		}
	}

	var files []string
	for _, pattern := range include {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !excluded[m] {
				files = append(files, m)
			}
		}
	}
	return files, nil
}
