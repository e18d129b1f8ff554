package gazecalib

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/geo/r2"

	"gazecalib/gaze"
)

// ReadMeasurements loads measurements from a CSV file. Each record is
//
//	pupilX, pupilY, glint pairs..., pogX, pogY
//
// with at least one glint pair; lines starting with '#' and blank lines are
// skipped. All measurements describe the first camera.
func ReadMeasurements(path string) ([]Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	measurements, err := parseMeasurements(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return measurements, nil
}

func parseMeasurements(r io.Reader) ([]Measurement, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var measurements []Measurement
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 6 || len(record)%2 != 0 {
			return nil, fmt.Errorf("record %d: want an even field count of at least 6, got %d", line, len(record))
		}

		fields := make([]float64, len(record))
		for i, raw := range record {
			fields[i], err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("record %d field %d: %w", line, i+1, err)
			}
		}

		obs := gaze.CameraObservation{
			PupilCenter: r2.Point{X: fields[0], Y: fields[1]},
		}
		for i := 2; i < len(fields)-2; i += 2 {
			obs.Glints = append(obs.Glints, r2.Point{X: fields[i], Y: fields[i+1]})
		}
		measurements = append(measurements, Measurement{
			Inputs:  gaze.PupilCenterGlintInputs{Observations: []gaze.CameraObservation{obs}},
			TruePOG: r2.Point{X: fields[len(fields)-2], Y: fields[len(fields)-1]},
		})
	}
	return measurements, nil
}
