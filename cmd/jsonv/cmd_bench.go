package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jsonv/format"
	"github.com/dhamidi/jsonv/validator"
)

const sampleDocument = `{"hello": "world", "test": [1,2,3,4,5,"6", {"7": 8}, 9], "test_2": [{}, {}, {}]}`

func newBenchCmd() *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:          "bench [file]",
		Short:        "Time validation of a sample document (or a file) with each engine",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations <= 0 {
				return fmt.Errorf("iterations must be positive, got %d", iterations)
			}
			log := commonlog.GetLogger("jsonv.bench")

			data := []byte(sampleDocument)
			if len(args) == 1 {
				var err error
				if data, err = readInput(cmd, args[0]); err != nil {
					return err
				}
			}

			engines := []struct {
				name  string
				check checkFunc
			}{
				{"scanner", validator.New().Check},
				{"grammar", grammarChecker(validator.DefaultMaxDepth)},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d bytes, %d iterations, valid: %t\n", len(data), iterations, validator.Valid(data))

			results := make([]format.Result, 0, len(engines))
			for _, e := range engines {
				var err error
				start := time.Now()
				for i := 0; i < iterations; i++ {
					err = e.check(data)
				}
				elapsed := time.Since(start)
				log.Infof("%s: %s total", e.name, elapsed)
				results = append(results, format.Result{
					Name:    e.name,
					Err:     err,
					Elapsed: elapsed / time.Duration(iterations),
				})
			}

			return format.NewTableEncoder(out).Encode(results)
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 1000, "number of validations per engine")

	return cmd
}
