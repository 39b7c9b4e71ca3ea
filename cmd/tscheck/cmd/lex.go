package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tscore-lang/tscore/internal/token"
	"github.com/tscore-lang/tscore/pkg/tscheck"
)

var (
	lexEval       string
	lexShowPos    bool
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file or expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(lexEval, args)
	if err != nil {
		return err
	}

	engine, err := tscheck.New(tscheck.WithFileName(filename))
	if err != nil {
		return err
	}

	toks := engine.Tokens(input)
	errorCount := 0
	for _, tok := range toks {
		if tok.Kind == token.ILLEGAL {
			errorCount++
		}
		if lexOnlyErrors && tok.Kind != token.ILLEGAL {
			continue
		}
		printToken(tok)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "total tokens: %d, errors: %d\n", len(toks), errorCount)
	}
	if lexOnlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	switch {
	case tok.Kind == token.EOF:
		output = "[EOF]"
	case tok.Kind == token.ILLEGAL:
		output = fmt.Sprintf("[ILLEGAL] %q", tok.Lexeme)
	case tok.Lexeme == "":
		output = fmt.Sprintf("[%s]", tok.Kind)
	default:
		output = fmt.Sprintf("[%s] %q", tok.Kind, tok.Lexeme)
	}
	if lexShowPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(output)
}

func readInput(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
