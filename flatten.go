package svgdrive

import (
	"math"

	"github.com/pkg/errors"
	"honnef.co/go/curve"
)

// Flatten samples seg into a polyline. Lines and closes yield their two end
// points, a move yields its single point, and curves and arcs yield steps+1
// points evenly spaced in parameter (or angle), both ends included.
func Flatten(seg Segment, steps int) ([]Point, error) {
	if steps < 1 {
		return nil, errors.Errorf("flatten: steps must be at least 1, got %d", steps)
	}

	switch seg.Kind {
	case MoveSegment:
		return []Point{seg.Start}, nil
	case LineSegment, CloseSegment:
		return []Point{seg.Start, seg.End}, nil
	case CubicSegment:
		cb := curve.CubicBez{
			P0: curve.Point(seg.Start),
			P1: curve.Point(seg.Control1),
			P2: curve.Point(seg.Control2),
			P3: curve.Point(seg.End),
		}
		return sample(steps, func(t float64) Point { return Point(cb.Eval(t)) }), nil
	case QuadraticSegment:
		qb := curve.QuadBez{
			P0: curve.Point(seg.Start),
			P1: curve.Point(seg.Control1),
			P2: curve.Point(seg.End),
		}
		return sample(steps, func(t float64) Point { return Point(qb.Eval(t)) }), nil
	case ArcSegment:
		sweep := seg.EndAngle - seg.StartAngle
		pts := sample(steps, func(t float64) Point {
			a := (seg.StartAngle + sweep*t) * math.Pi / 180
			sin, cos := math.Sincos(a)
			return Point{
				X: seg.Center.X + seg.Radii.X*cos,
				Y: seg.Center.Y + seg.Radii.Y*sin,
			}
		})
		// the end points are exact so that subpaths stay continuous
		pts[0], pts[steps] = seg.Start, seg.End
		return pts, nil
	}
	return nil, errors.Wrapf(ErrUnknownSegment, "flatten %v", seg.Kind)
}

func sample(steps int, at func(t float64) Point) []Point {
	pts := make([]Point, steps+1)
	for i := range pts {
		pts[i] = at(float64(i) / float64(steps))
	}
	return pts
}

// stepsFor returns the chord count for seg: its own Steps when set, else
// the configured count for its kind.
func stepsFor(seg Segment, cfg Config) int {
	if seg.Steps > 0 {
		return seg.Steps
	}
	switch seg.Kind {
	case CubicSegment, QuadraticSegment:
		return cfg.CurveSteps
	case ArcSegment:
		return cfg.ArcSteps
	}
	return 1
}

// FlattenSubpath concatenates the samples of every segment in sp. The first
// sample of a segment repeats the last one of its predecessor and is
// dropped.
func FlattenSubpath(sp Subpath, cfg Config) ([]Point, error) {
	var pts []Point
	for _, seg := range sp.Segments {
		samples, err := Flatten(seg, stepsFor(seg, cfg))
		if err != nil {
			return nil, err
		}
		if len(pts) > 0 {
			samples = samples[1:]
		}
		pts = append(pts, samples...)
	}
	return pts, nil
}
