package svgdrive

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// Point is an X,Y coordinate in the robot frame: y grows upward and angles
// grow counter-clockwise from the positive x axis.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return curve.Point(p).Distance(curve.Point(o))
}

// Angle returns the direction from p to o in degrees, in (-180, 180].
func (p Point) Angle(o Point) float64 {
	return curve.Point(o).Sub(curve.Point(p)).Angle() * 180 / math.Pi
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// SegmentKind tells which fields of a Segment are meaningful.
type SegmentKind int

// These are the segment kinds produced by the path parser.
const (
	MoveSegment SegmentKind = iota
	LineSegment
	CubicSegment
	QuadraticSegment
	ArcSegment
	CloseSegment
)

func (k SegmentKind) String() string {
	switch k {
	case MoveSegment:
		return "move"
	case LineSegment:
		return "line"
	case CubicSegment:
		return "cubic"
	case QuadraticSegment:
		return "quadratic"
	case ArcSegment:
		return "arc"
	case CloseSegment:
		return "close"
	}
	return fmt.Sprintf("SegmentKind(%d)", int(k))
}

// Segment is one geometric piece of a subpath in absolute robot-frame
// coordinates.
//
// Within a subpath the Start of a segment equals the End of the previous
// one. A MoveSegment has Start == End. Control1 is used by cubic and
// quadratic segments, Control2 only by cubic ones. Arcs carry their Center,
// Radii (rx, ry) and sweep from StartAngle to EndAngle in degrees; the sweep
// is clockwise when EndAngle < StartAngle.
type Segment struct {
	Kind       SegmentKind
	Start      Point
	End        Point
	Control1   Point
	Control2   Point
	Center     Point
	Radii      Point
	StartAngle float64
	EndAngle   float64
	// Steps overrides the configured chord count when positive.
	Steps int
}

// Subpath is the run of segments opened by one moveto. Err is set when the
// subpath could not be parsed; its segments are then discarded by the
// planner.
type Subpath struct {
	Segments []Segment
	Err      error
}

// Start returns the first point of the subpath.
func (sp Subpath) Start() Point {
	if len(sp.Segments) == 0 {
		return Point{}
	}
	return sp.Segments[0].Start
}
