package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/jsonv/ebnflex"
	"github.com/dhamidi/jsonv/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the EBNF grammar of JSON",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarShowCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:          "check [file]",
		Short:        "Parse and verify the built-in grammar or an EBNF file",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				name string
				g    ebnf.Grammar
				err  error
			)
			if len(args) == 1 {
				name = args[0]
				g, err = ebnflex.LoadGrammar(name)
			} else {
				name = "json.ebnf"
				g, err = grammar.Load()
				if startProduction == "" {
					startProduction = grammar.Start
				}
			}
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return errSilent
			}

			if startProduction != "" {
				if err := grammar.Verify(g, startProduction); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return errSilent
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d productions, %d tokens\n",
				name, len(g), len(ebnflex.TokenProductions(g)))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax of a file)")

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}
}

// printErrors prints each error of an ebnf error list on its own line,
// looking through wrapping.
func printErrors(w io.Writer, err error) {
	for inner := err; inner != nil; inner = errors.Unwrap(inner) {
		v := reflect.ValueOf(inner)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
