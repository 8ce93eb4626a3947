package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dhamidi/parcomb/lex"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "EBNF token grammar tools",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarTokensCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and verify an EBNF grammar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := lex.LoadGrammar(args[0])
			if err != nil {
				return grammarErrors(err)
			}

			if startProduction == "" {
				return nil
			}
			if err := lex.Verify(grammar, startProduction); err != nil {
				return grammarErrors(err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarTokensCmd() *cobra.Command {
	var kinds []string
	var skip []string

	cmd := &cobra.Command{
		Use:   "tokens <grammar> [file]",
		Short: "Tokenize input with the token productions of a grammar",
		Long: `Tokenize a file, or stdin, with the productions of an EBNF grammar and
print one token per line.

Without --kinds every production whose name starts with an upper-case
letter is tried, in declaration order. That includes aggregate productions
such as "Tokens = { Token } ." which match the whole input as one token,
so most grammars want --kinds listing the token productions.
WhiteSpace and Comment tokens are dropped unless --skip says otherwise.`,
		Example: "  parcomb grammar tokens calc/calc.ebnf --kinds Number,Ident,Plus,Minus,Star,Slash,LParen,RParen,Comma,WhiteSpace",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := lex.LoadGrammar(args[0])
			if err != nil {
				return grammarErrors(err)
			}

			filename := "-"
			if len(args) > 1 {
				filename = args[1]
			}
			input, err := readInput(cmd.InOrStdin(), filename)
			if err != nil {
				return err
			}

			var opts []lex.Option
			if len(kinds) > 0 {
				opts = append(opts, lex.WithKinds(kinds...))
			}
			if cmd.Flags().Changed("skip") {
				opts = append(opts, lex.WithSkipKinds(skip...))
			}

			tokens, err := lex.Tokenize(grammar, input, filename, opts...)
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%q\n", tok.Position, tok.Kind, tok.Literal)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&kinds, "kinds", nil, "token productions to try, in priority order")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "token kinds to drop from the output (default WhiteSpace,Comment)")

	return cmd
}

// grammarErrors turns an ebnf error list into one error with a line per
// entry, keeping the context of any wrapping.
func grammarErrors(err error) error {
	v := reflect.ValueOf(errors.Cause(err))
	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return err
	}
	lines := make([]string, v.Len())
	for i := range lines {
		lines[i] = fmt.Sprint(v.Index(i).Interface())
	}
	return errors.Errorf("%s:\n%s", strings.SplitN(err.Error(), ":", 2)[0], strings.Join(lines, "\n"))
}
