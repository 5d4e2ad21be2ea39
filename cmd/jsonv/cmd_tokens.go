package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsonv/ebnflex"
	"github.com/dhamidi/jsonv/grammar"
)

func newTokensCmd() *cobra.Command {
	var whitespace bool

	cmd := &cobra.Command{
		Use:          "tokens [file]",
		Short:        "Print the token stream of a document",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := readInput(cmd, name)
			if err != nil {
				return err
			}

			filename := name
			if name == "-" {
				filename = ""
			}
			lexer, err := grammar.NewLexer(data, filename)
			if err != nil {
				return err
			}
			tokens, err := lexer.Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}

			out := cmd.OutOrStdout()
			var bad []ebnflex.Token
			for _, tok := range tokens {
				if tok.Kind == ebnflex.KindError {
					bad = append(bad, tok)
				}
				if tok.Kind == "Whitespace" && !whitespace {
					continue
				}
				fmt.Fprintln(out, tok)
			}

			if len(bad) > 0 {
				return fmt.Errorf("%s: unrecognized input %q", bad[0].Position, bad[0].Literal)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&whitespace, "whitespace", false, "include whitespace tokens")

	return cmd
}
