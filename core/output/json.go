package output

import (
	"encoding/json"
	"io"

	"tollsweep/core/sensitivity"
	"tollsweep/core/sweep"
)

type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) RenderSweep(w io.Writer, report *sweep.Report) error {
	return writeJSON(w, report)
}

func (f *jsonFormatter) RenderSensitivity(w io.Writer, analysis *sensitivity.Analysis) error {
	return writeJSON(w, analysis)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
