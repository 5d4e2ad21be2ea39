package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jsonv/grammar"
	"github.com/dhamidi/jsonv/validator"
)

// readInput reads the named file, or the command's stdin for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func displayName(name string) string {
	if name == "-" {
		return "<stdin>"
	}
	return name
}

type checkFunc func(data []byte) error

func newChecker(engine string, v *validator.Validator) (checkFunc, error) {
	switch engine {
	case "scanner":
		return v.Check, nil
	case "grammar":
		if v.Lax() {
			return nil, errors.New("the grammar engine only accepts strict separators")
		}
		return grammarChecker(v.MaxDepth()), nil
	}
	return nil, fmt.Errorf("unknown engine: %s", engine)
}

func grammarChecker(maxDepth int) checkFunc {
	return func(data []byte) error {
		return grammar.Check(data, maxDepth)
	}
}
