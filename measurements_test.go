package gazecalib

import (
	"strings"
	"testing"
)

func TestParseMeasurements(t *testing.T) {
	input := `# pupil, glints, true point of gaze
301.2, 398.7, 280.1, 390.0, 322.5, 391.3, 840, 525
305.0, 401.1, 284.3, 392.2, 601, 788
`
	measurements, err := parseMeasurements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseMeasurements failed: %v", err)
	}
	if len(measurements) != 2 {
		t.Fatalf("got %d measurements, want 2", len(measurements))
	}

	first := measurements[0]
	obs := first.Inputs.Observations[0]
	if obs.PupilCenter.X != 301.2 || obs.PupilCenter.Y != 398.7 {
		t.Errorf("pupil center mismatch: got %+v", obs.PupilCenter)
	}
	if len(obs.Glints) != 2 {
		t.Fatalf("got %d glints, want 2", len(obs.Glints))
	}
	if obs.Glints[1].X != 322.5 || obs.Glints[1].Y != 391.3 {
		t.Errorf("glint mismatch: got %+v", obs.Glints[1])
	}
	if first.TruePOG.X != 840 || first.TruePOG.Y != 525 {
		t.Errorf("true POG mismatch: got %+v", first.TruePOG)
	}

	second := measurements[1]
	if len(second.Inputs.Observations[0].Glints) != 1 {
		t.Errorf("got %d glints, want 1", len(second.Inputs.Observations[0].Glints))
	}
	if second.TruePOG.X != 601 || second.TruePOG.Y != 788 {
		t.Errorf("true POG mismatch: got %+v", second.TruePOG)
	}
}

func TestParseMeasurementsRejectsBadRecords(t *testing.T) {
	badInputs := []string{
		// no glint pair
		"301.2, 398.7, 840, 525\n",
		// odd field count
		"301.2, 398.7, 280.1, 390.0, 322.5, 840, 525\n",
		// non-numeric field
		"301.2, 398.7, 280.1, oops, 840, 525\n",
	}
	for i, input := range badInputs {
		if _, err := parseMeasurements(strings.NewReader(input)); err == nil {
			t.Errorf("bad input %d accepted", i)
		}
	}
}

func TestReadMeasurementsMissingFile(t *testing.T) {
	if _, err := ReadMeasurements("does-not-exist.csv"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
