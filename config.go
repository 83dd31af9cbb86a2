package svgdrive

import "github.com/pkg/errors"

// Config carries the unit conversion and sampling settings used while
// planning a trajectory. The zero value is not valid; start from
// DefaultConfig.
type Config struct {
	// Scale converts drawing units into the distance unit of the actuator.
	Scale float64
	// CurveSteps is the number of chords per cubic or quadratic Bézier.
	CurveSteps int
	// ArcSteps is the number of chords per elliptical arc.
	ArcSteps int
	// CircleSteps is the number of chords per circle element.
	CircleSteps int
	// TurnThreshold is the rotation, in degrees, below which no turn is issued.
	TurnThreshold float64
	// AngleOffset is added to every target angle before normalisation.
	AngleOffset float64
	// Strict aborts the whole parse on the first syntax or unsupported
	// command error instead of skipping the offending subpath.
	Strict bool
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() Config {
	return Config{
		Scale:         1,
		CurveSteps:    10,
		ArcSteps:      10,
		CircleSteps:   24,
		TurnThreshold: 1,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Scale <= 0:
		return errors.Errorf("scale must be positive, got %v", c.Scale)
	case c.CurveSteps < 1:
		return errors.Errorf("curve steps must be at least 1, got %d", c.CurveSteps)
	case c.ArcSteps < 1:
		return errors.Errorf("arc steps must be at least 1, got %d", c.ArcSteps)
	case c.CircleSteps < 1:
		return errors.Errorf("circle steps must be at least 1, got %d", c.CircleSteps)
	case c.TurnThreshold < 0:
		return errors.Errorf("turn threshold must not be negative, got %v", c.TurnThreshold)
	}
	return nil
}
