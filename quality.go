package gazecalib

import (
	"math"

	"go.viam.com/rdk/logging"
)

// minTargetSpreadPx is the smallest per-axis standard deviation of the true
// points of gaze that still constrains the angular parameters.
const minTargetSpreadPx = 20.0

// checkTrainingQuality warns about training sets that are too small or whose
// targets are too clustered to pin down the calibrated parameters.
func checkTrainingQuality(train []Measurement, logger logging.Logger) {
	n := len(train)
	if n == 0 {
		return
	}
	if n < 3 {
		logger.Warnf("only %d training samples (3 or more recommended)", n)
	}

	var cx, cy float64
	for _, m := range train {
		cx += m.TruePOG.X
		cy += m.TruePOG.Y
	}
	cx /= float64(n)
	cy /= float64(n)

	var stdX, stdY float64
	for _, m := range train {
		stdX += (m.TruePOG.X - cx) * (m.TruePOG.X - cx)
		stdY += (m.TruePOG.Y - cy) * (m.TruePOG.Y - cy)
	}
	stdX = math.Sqrt(stdX / float64(n))
	stdY = math.Sqrt(stdY / float64(n))

	logger.Debugf("training targets: %d points, spread x=%.1fpx y=%.1fpx", n, stdX, stdY)
	if stdX < minTargetSpreadPx || stdY < minTargetSpreadPx {
		logger.Warnf("training targets are clustered (spread x=%.1fpx y=%.1fpx), calibration may be ill-conditioned", stdX, stdY)
	}
}
