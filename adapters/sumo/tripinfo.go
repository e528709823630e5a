package sumo

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"tollsweep/core/kpi"
	"tollsweep/internal/errors"
)

// TripinfoReader streams trip records from a tripinfo output file, one
// element at a time. The file may be arbitrarily large; only the current
// record is held in memory.
type TripinfoReader struct {
	file    *os.File
	decoder *xml.Decoder
}

var _ kpi.TripSource = (*TripinfoReader)(nil)

// OpenTripinfo opens a tripinfo file for streaming. A missing file is a
// MissingArtifact error so the caller can skip the scenario.
func OpenTripinfo(path string) (*TripinfoReader, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.MissingArtifact(path)
		}
		return nil, errors.Wrap(errors.TypeInternal, "opening tripinfo file", err)
	}
	return &TripinfoReader{
		file:    file,
		decoder: xml.NewDecoder(file),
	}, nil
}

type tripinfoElem struct {
	VType     string `xml:"vType,attr"`
	Emissions *struct {
		CO2Abs         string `xml:"CO2_abs,attr"`
		ElectricityAbs string `xml:"electricity_abs,attr"`
	} `xml:"emissions"`
}

// Next returns the next trip record, io.EOF at end of stream, or a
// MalformedInput error when the document cannot be parsed.
func (r *TripinfoReader) Next() (*kpi.TripRecord, error) {
	for {
		tok, err := r.decoder.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.MalformedInput("reading tripinfo stream", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "tripinfo" {
			continue
		}

		var elem tripinfoElem
		if err := r.decoder.DecodeElement(&elem, &start); err != nil {
			return nil, errors.MalformedInput("decoding tripinfo element", err)
		}

		rec := &kpi.TripRecord{VehicleTypeHint: elem.VType}
		if elem.Emissions != nil {
			if rec.CO2Abs, err = parseMeasurement(elem.Emissions.CO2Abs); err != nil {
				return nil, errors.MalformedInput("parsing CO2_abs", err)
			}
			if rec.ElectricityAbs, err = parseMeasurement(elem.Emissions.ElectricityAbs); err != nil {
				return nil, errors.MalformedInput("parsing electricity_abs", err)
			}
		}
		return rec, nil
	}
}

// Close releases the underlying file.
func (r *TripinfoReader) Close() error {
	return r.file.Close()
}

// parseMeasurement parses an optional nonnegative measurement attribute;
// absent means zero, negative is malformed.
func parseMeasurement(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative measurement %v", v)
	}
	return v, nil
}
