package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"github.com/tliron/kutil/util"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// errSilent fails a command without printing anything.
var errSilent = errors.New("silent failure")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "jsonv:", err)
		}
		util.Exit(1)
	}
	util.Exit(0)
}

func newRootCmd() *cobra.Command {
	var verbose int
	var logPath string

	rootCmd := &cobra.Command{
		Use:           "jsonv",
		Short:         "A JSON syntax validator",
		Version:       version,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbose, logPath)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write logs to this file instead of stderr (default $JSONV_LOG)")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newBenchCmd())

	return rootCmd
}

// configureLogging sets up commonlog. Without -v nothing is logged.
func configureLogging(verbose int, logPath string) {
	if logPath == "" {
		logPath = os.Getenv("JSONV_LOG")
	}
	if logPath == "" {
		commonlog.Configure(verbose, nil)
		return
	}
	commonlog.Configure(verbose, &logPath)
}
