package format

import (
	"bytes"
	"io"

	"github.com/olekukonko/tablewriter"
)

type TableEncoder struct {
	w       io.Writer
	results []Result
}

func NewTableEncoder(w io.Writer) *TableEncoder {
	return &TableEncoder{w: w}
}

func (e *TableEncoder) Encode(results []Result) error {
	e.results = results
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TableEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Name", "Result", "Position", "Elapsed"})
	table.SetAutoWrapText(false)
	for _, r := range e.results {
		result := "ok"
		if !r.Valid() {
			result = r.Err.Error()
			if syntaxErr, ok := r.SyntaxError(); ok {
				result = syntaxErr.Kind.String()
			}
		}
		table.Append([]string{r.Name, result, r.Position(), r.Elapsed.String()})
	}
	table.Render()
	return buf.Bytes(), nil
}
