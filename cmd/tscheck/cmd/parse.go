package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tscore-lang/tscore/pkg/tscheck"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse source code and print the resulting AST",
	Long: `Parse source code and print a one-line-per-node summary of the
Abstract Syntax Tree. If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := parseInput(args)
	if err != nil {
		return err
	}

	engine, err := tscheck.New(tscheck.WithFileName(filename))
	if err != nil {
		return err
	}

	prog, err := engine.Parse(input)
	if err != nil {
		if cerr, ok := err.(*tscheck.CompileError); ok {
			printCompileError(cerr)
			return fmt.Errorf("parsing failed with %d error(s)", len(cerr.Errors))
		}
		return err
	}

	fmt.Println(prog.String())
	return nil
}

func parseInput(args []string) (input, filename string, err error) {
	if parseEval != "" {
		return parseEval, "<eval>", nil
	}
	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("error reading file: %w", err)
		}
		return string(content), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}

func printCompileError(cerr *tscheck.CompileError) {
	if jsonOutput {
		doc, err := diagnosticsJSON(cerr.Errors)
		if err == nil {
			fmt.Println(doc)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "%s errors:\n", cerr.Stage)
	for _, d := range cerr.Errors {
		fmt.Fprintf(os.Stderr, "  %s:%d:%d: %s: %s\n", "", d.Line, d.Column, d.Kind, d.Message)
	}
}
