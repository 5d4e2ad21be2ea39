package format

import (
	"io"

	"github.com/dhamidi/jsonv/validator"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type JSONEncoder struct {
	w       io.Writer
	results []Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(results []Result) error {
	e.results = results
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := make([]jsonResult, 0, len(e.results))
	for _, r := range e.results {
		data = append(data, buildResult(r))
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonResult struct {
	Name      string     `json:"name"`
	Valid     bool       `json:"valid"`
	ElapsedNs int64      `json:"elapsedNs,omitempty"`
	Error     *jsonError `json:"error,omitempty"`
}

type jsonError struct {
	Message  string         `json:"message"`
	Kind     validator.Kind `json:"kind,omitempty"`
	Position *jsonPosition  `json:"position,omitempty"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func buildResult(r Result) jsonResult {
	data := jsonResult{
		Name:      r.Name,
		Valid:     r.Valid(),
		ElapsedNs: r.Elapsed.Nanoseconds(),
	}
	if r.Valid() {
		return data
	}
	data.Error = &jsonError{Message: r.Err.Error()}
	if syntaxErr, ok := r.SyntaxError(); ok {
		data.Error.Message = syntaxErr.Kind.String()
		data.Error.Kind = syntaxErr.Kind
		data.Error.Position = &jsonPosition{
			Offset: syntaxErr.Offset,
			Line:   syntaxErr.Line,
			Column: syntaxErr.Column,
		}
	}
	return data
}
