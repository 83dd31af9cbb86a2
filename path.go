package svgdrive

import (
	"math"

	"github.com/pkg/errors"
	mt "github.com/rustyoz/Mtransform"
)

// Path is an SVG path element.
type Path struct {
	ID              string `xml:"id,attr"`
	D               string `xml:"d,attr"`
	TransformString string `xml:"transform,attr"`

	transform mt.Transform
}

// NewPath returns a path for the given path description, without any
// element transform.
func NewPath(d string) *Path {
	return &Path{D: d, transform: mt.Identity()}
}

// Trace implements the Tracer interface.
func (p *Path) Trace(cfg Config) ([]Subpath, error) {
	t, err := elementTransform(p.transform, p.TransformString)
	if err != nil {
		return skipOrFail(cfg, errors.Wrapf(err, "path %q", p.ID))
	}
	return ParsePath(p.D, t, cfg.Strict)
}

type curveFamily int

const (
	noCurve curveFamily = iota
	cubicCurve
	quadraticCurve
)

// pathDescriptionParser turns path tokens into absolute segments. Cursor
// positions are kept in the source frame so relative offsets stay exact;
// every emitted point goes through transform exactly once.
type pathDescriptionParser struct {
	transform mt.Transform

	current      Point // source frame
	subpathStart Point // source frame
	prevControl  Point // source frame, valid when lastCurve != noCurve
	lastCurve    curveFamily

	subpaths []Subpath
	sp       *Subpath
}

// ParsePath parses a path description into subpaths. The transform maps
// source coordinates to the robot frame's parent; the y flip is applied on
// top of it.
//
// A command with a malformed argument list or an unsupported variant marks
// its subpath as failed and the parser skips ahead to the next moveto. In
// strict mode the first such error is returned instead.
func ParsePath(d string, transform mt.Transform, strict bool) ([]Subpath, error) {
	tokens, err := Tokenize(d)
	if err != nil {
		if strict {
			return nil, err
		}
		return []Subpath{{Err: err}}, nil
	}

	pdp := &pathDescriptionParser{transform: ingestion(transform)}
	for _, tok := range tokens {
		if tok.Upper() != 'M' && pdp.sp != nil && pdp.sp.Err != nil {
			continue
		}
		if err := pdp.parseCommand(tok); err != nil {
			err = errors.Wrapf(err, "subpath %d, command %q", len(pdp.subpaths), tok.String())
			if strict {
				return nil, err
			}
			if pdp.sp == nil || tok.Upper() == 'M' {
				pdp.open()
			}
			pdp.sp.Err = err
		}
	}
	pdp.flush()
	return pdp.subpaths, nil
}

func (pdp *pathDescriptionParser) parseCommand(tok Token) error {
	nums, err := tok.Numbers()
	if err != nil {
		return err
	}
	rel := tok.Relative()

	switch tok.Upper() {
	case 'M':
		return pdp.parseMoveTo(nums, rel)
	case 'L':
		return pdp.parseLineTo(nums, rel)
	case 'H':
		return pdp.parseHLineTo(nums, rel)
	case 'V':
		return pdp.parseVLineTo(nums, rel)
	case 'C':
		return pdp.parseCurveTo(nums, rel)
	case 'S':
		return pdp.parseSmoothCurveTo(nums, rel)
	case 'Q':
		return pdp.parseQuadTo(nums, rel)
	case 'T':
		return pdp.parseSmoothQuadTo(nums, rel)
	case 'A':
		return pdp.parseArcTo(nums, rel)
	case 'Z':
		return pdp.parseClose()
	}
	return errors.Wrapf(ErrUnsupportedCommand, "command %q", tok.Command)
}

func (pdp *pathDescriptionParser) open() {
	pdp.flush()
	pdp.sp = &Subpath{}
}

func (pdp *pathDescriptionParser) flush() {
	if pdp.sp != nil {
		pdp.subpaths = append(pdp.subpaths, *pdp.sp)
		pdp.sp = nil
	}
}

// ensureOpen starts an implicit subpath at the current point for paths
// that draw before any moveto.
func (pdp *pathDescriptionParser) ensureOpen() {
	if pdp.sp == nil {
		pdp.open()
		pdp.subpathStart = pdp.current
		pdp.emit(Segment{Kind: MoveSegment}, pdp.current)
	}
}

func (pdp *pathDescriptionParser) point(x, y float64) Point {
	return applyTransform(pdp.transform, x, y)
}

// resolve returns the absolute source-frame point for a coordinate pair.
func (pdp *pathDescriptionParser) resolve(x, y float64, rel bool) Point {
	if rel {
		return Point{X: pdp.current.X + x, Y: pdp.current.Y + y}
	}
	return Point{X: x, Y: y}
}

// emit appends seg, filling Start from the cursor and End from end, and
// advances the cursor.
func (pdp *pathDescriptionParser) emit(seg Segment, end Point) {
	seg.Start = pdp.point(pdp.current.X, pdp.current.Y)
	seg.End = pdp.point(end.X, end.Y)
	if seg.Kind == MoveSegment {
		seg.Start = seg.End
	}
	pdp.sp.Segments = append(pdp.sp.Segments, seg)
	pdp.current = end
}

func (pdp *pathDescriptionParser) lineTo(end Point) {
	pdp.ensureOpen()
	pdp.emit(Segment{Kind: LineSegment}, end)
	pdp.lastCurve = noCurve
}

func (pdp *pathDescriptionParser) parseMoveTo(nums []float64, rel bool) error {
	pdp.open()
	pdp.current = pdp.resolve(nums[0], nums[1], rel)
	pdp.subpathStart = pdp.current
	pdp.lastCurve = noCurve
	pdp.emit(Segment{Kind: MoveSegment}, pdp.current)

	for i := 2; i < len(nums); i += 2 {
		pdp.lineTo(pdp.resolve(nums[i], nums[i+1], rel))
	}
	return nil
}

func (pdp *pathDescriptionParser) parseLineTo(nums []float64, rel bool) error {
	for i := 0; i < len(nums); i += 2 {
		pdp.lineTo(pdp.resolve(nums[i], nums[i+1], rel))
	}
	return nil
}

func (pdp *pathDescriptionParser) parseHLineTo(nums []float64, rel bool) error {
	for _, n := range nums {
		end := Point{X: n, Y: pdp.current.Y}
		if rel {
			end.X += pdp.current.X
		}
		pdp.lineTo(end)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseVLineTo(nums []float64, rel bool) error {
	for _, n := range nums {
		end := Point{X: pdp.current.X, Y: n}
		if rel {
			end.Y += pdp.current.Y
		}
		pdp.lineTo(end)
	}
	return nil
}

func (pdp *pathDescriptionParser) cubicTo(c1, c2, end Point) {
	pdp.ensureOpen()
	pdp.emit(Segment{
		Kind:     CubicSegment,
		Control1: pdp.point(c1.X, c1.Y),
		Control2: pdp.point(c2.X, c2.Y),
	}, end)
	pdp.prevControl = c2
	pdp.lastCurve = cubicCurve
}

func (pdp *pathDescriptionParser) quadTo(c, end Point) {
	pdp.ensureOpen()
	pdp.emit(Segment{
		Kind:     QuadraticSegment,
		Control1: pdp.point(c.X, c.Y),
	}, end)
	pdp.prevControl = c
	pdp.lastCurve = quadraticCurve
}

// reflected returns the implicit first control point of a smooth curve: the
// previous control point mirrored through the current point when the
// previous segment was of the same family, else the current point.
func (pdp *pathDescriptionParser) reflected(family curveFamily) Point {
	if pdp.lastCurve != family {
		return pdp.current
	}
	return Point{
		X: 2*pdp.current.X - pdp.prevControl.X,
		Y: 2*pdp.current.Y - pdp.prevControl.Y,
	}
}

func (pdp *pathDescriptionParser) parseCurveTo(nums []float64, rel bool) error {
	for i := 0; i < len(nums); i += 6 {
		c1 := pdp.resolve(nums[i], nums[i+1], rel)
		c2 := pdp.resolve(nums[i+2], nums[i+3], rel)
		end := pdp.resolve(nums[i+4], nums[i+5], rel)
		pdp.cubicTo(c1, c2, end)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseSmoothCurveTo(nums []float64, rel bool) error {
	for i := 0; i < len(nums); i += 4 {
		c1 := pdp.reflected(cubicCurve)
		c2 := pdp.resolve(nums[i], nums[i+1], rel)
		end := pdp.resolve(nums[i+2], nums[i+3], rel)
		pdp.cubicTo(c1, c2, end)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseQuadTo(nums []float64, rel bool) error {
	for i := 0; i < len(nums); i += 4 {
		c := pdp.resolve(nums[i], nums[i+1], rel)
		end := pdp.resolve(nums[i+2], nums[i+3], rel)
		pdp.quadTo(c, end)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseSmoothQuadTo(nums []float64, rel bool) error {
	for i := 0; i < len(nums); i += 2 {
		c := pdp.reflected(quadraticCurve)
		end := pdp.resolve(nums[i], nums[i+1], rel)
		pdp.quadTo(c, end)
	}
	return nil
}

func (pdp *pathDescriptionParser) parseArcTo(nums []float64, rel bool) error {
	for i := 0; i < len(nums); i += 7 {
		rx, ry, rot := math.Abs(nums[i]), math.Abs(nums[i+1]), nums[i+2]
		largeArc, sweep := nums[i+3] != 0, nums[i+4] != 0
		end := pdp.resolve(nums[i+5], nums[i+6], rel)

		if end == pdp.current {
			pdp.lastCurve = noCurve
			continue
		}
		if rx == 0 || ry == 0 {
			pdp.lineTo(end)
			continue
		}
		// a circular arc looks the same under any rotation
		circular := rx == ry
		if !circular && math.Mod(rot, 180) != 0 {
			return errors.Wrapf(ErrUnsupportedCommand, "arc with x-axis-rotation %v", rot)
		}
		scale, similar := similarity(pdp.transform)
		aligned := axisAligned(pdp.transform)
		if !aligned && !(circular && similar) {
			return errors.Wrap(ErrUnsupportedCommand, "elliptical arc under a rotating or skewing transform")
		}

		center, rx, ry := arcCenter(pdp.current, end, rx, ry, largeArc, sweep)

		pdp.ensureOpen()
		seg := Segment{
			Kind:   ArcSegment,
			Center: pdp.point(center.X, center.Y),
			Radii:  Point{X: rx * scale, Y: ry * scale},
		}
		if aligned {
			seg.Radii = Point{
				X: rx * math.Abs(pdp.transform[0][0]),
				Y: ry * math.Abs(pdp.transform[1][1]),
			}
		}
		start := pdp.point(pdp.current.X, pdp.current.Y)
		stop := pdp.point(end.X, end.Y)
		seg.StartAngle = ellipseAngle(seg.Center, seg.Radii, start)
		seg.EndAngle = ellipseAngle(seg.Center, seg.Radii, stop)
		// the sweep flag counts in the source frame; a mirroring transform,
		// such as the y flip, reverses it
		ccw := sweep != (determinant(pdp.transform) < 0)
		// not always counter-clockwise: a sweep=0 arc runs opposite to sweep=1
		switch {
		case ccw && seg.EndAngle < seg.StartAngle:
			seg.EndAngle += 360
		case !ccw && seg.EndAngle > seg.StartAngle:
			seg.EndAngle -= 360
		}
		pdp.emit(seg, end)
		pdp.lastCurve = noCurve
	}
	return nil
}

func (pdp *pathDescriptionParser) parseClose() error {
	pdp.ensureOpen()
	pdp.emit(Segment{Kind: CloseSegment}, pdp.subpathStart)
	pdp.lastCurve = noCurve
	return nil
}

// arcCenter converts an axis-aligned endpoint arc to its center, scaling
// the radii up when they are too small to reach the end point.
func arcCenter(from, to Point, rx, ry float64, largeArc, sweep bool) (Point, float64, float64) {
	// midpoint-relative start point
	x1 := (from.X - to.X) / 2
	y1 := (from.Y - to.Y) / 2

	if lambda := sq(x1)/sq(rx) + sq(y1)/sq(ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	radicand := sq(rx)*sq(ry) - sq(rx)*sq(y1) - sq(ry)*sq(x1)
	if radicand < 0 {
		radicand = 0
	} else {
		radicand = math.Sqrt(radicand / (sq(rx)*sq(y1) + sq(ry)*sq(x1)))
	}
	if largeArc == sweep {
		radicand = -radicand
	}

	cx := radicand * rx / ry * y1
	cy := radicand * -ry / rx * x1
	return Point{
		X: cx + (from.X+to.X)/2,
		Y: cy + (from.Y+to.Y)/2,
	}, rx, ry
}

// ellipseAngle returns the parametric angle of p on the ellipse, in degrees.
func ellipseAngle(center, radii, p Point) float64 {
	return math.Atan2((p.Y-center.Y)/radii.Y, (p.X-center.X)/radii.X) * 180 / math.Pi
}

func sq(v float64) float64 {
	return v * v
}

// elementTransform composes an element's inherited transform with its own
// transform attribute.
func elementTransform(inherited mt.Transform, attr string) (mt.Transform, error) {
	if inherited == (mt.Transform{}) {
		inherited = mt.Identity()
	}
	own, err := parseTransform(attr)
	if err != nil {
		return inherited, err
	}
	return mt.MultiplyTransforms(inherited, own), nil
}
