package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jsonv/format"
	"github.com/dhamidi/jsonv/validator"
)

func newCheckCmd() *cobra.Command {
	var (
		lax          bool
		maxDepth     int
		engine       string
		outputFormat string
		quiet        bool
		noColor      bool
	)

	cmd := &cobra.Command{
		Use:          "check [file...]",
		Short:        "Validate JSON documents (stdin when no file or \"-\" is given)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("jsonv.check")

			opts := []validator.Option{validator.WithMaxDepth(maxDepth)}
			if lax {
				opts = append(opts, validator.WithLaxSeparators())
			}
			check, err := newChecker(engine, validator.New(opts...))
			if err != nil {
				return err
			}

			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if text, ok := encoder.(*format.TextEncoder); ok && noColor {
				text.DisableColor()
			}

			if len(args) == 0 {
				args = []string{"-"}
			}

			results := make([]format.Result, 0, len(args))
			invalid := 0
			for _, name := range args {
				result := format.Result{Name: displayName(name)}
				data, err := readInput(cmd, name)
				if err != nil {
					result.Err = err
				} else {
					start := time.Now()
					result.Err = check(data)
					result.Elapsed = time.Since(start)
					log.Debugf("%s: %d bytes, %s engine, %s", result.Name, len(data), engine, result.Elapsed)
				}
				if !result.Valid() {
					invalid++
				}
				results = append(results, result)
			}

			if !quiet {
				if err := encoder.Encode(results); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}

			if invalid > 0 && quiet {
				return errSilent
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d documents invalid", invalid, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&lax, "lax", false, "accept trailing and missing commas between elements")
	cmd.Flags().IntVar(&maxDepth, "max-depth", validator.DefaultMaxDepth, "maximum nesting of arrays and objects")
	cmd.Flags().StringVar(&engine, "engine", "scanner", "validation engine (scanner, grammar)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, table)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, only set the exit status")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored text output")

	return cmd
}
