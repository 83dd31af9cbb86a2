package svgdrive

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	mt "github.com/rustyoz/Mtransform"
)

// Circle is an SVG circle element
type Circle struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	Cx              string `xml:"cx,attr"`
	Cy              string `xml:"cy,attr"`
	Radius          string `xml:"r,attr"`

	transform mt.Transform
}

// NewCircle returns a circle centred on (cx, cy).
func NewCircle(cx, cy, r float64) *Circle {
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return &Circle{Cx: format(cx), Cy: format(cy), Radius: format(r), transform: mt.Identity()}
}

// Geometry returns the parsed centre and radius. Missing attributes are 0.
func (c *Circle) Geometry() (cx, cy, r float64, err error) {
	if cx, err = parseLength(c.Cx); err != nil {
		return 0, 0, 0, errors.Wrap(err, "cx")
	}
	if cy, err = parseLength(c.Cy); err != nil {
		return 0, 0, 0, errors.Wrap(err, "cy")
	}
	if r, err = parseLength(c.Radius); err != nil {
		return 0, 0, 0, errors.Wrap(err, "r")
	}
	return cx, cy, r, nil
}

// Trace implements the Tracer interface. The circle is traced as one full
// counter-clockwise (in the robot frame) turn starting at angle 0.
func (c *Circle) Trace(cfg Config) ([]Subpath, error) {
	sp, err := c.subpath(cfg)
	if err != nil {
		return skipOrFail(cfg, errors.Wrapf(err, "circle %q", c.ID))
	}
	return []Subpath{sp}, nil
}

func (c *Circle) subpath(cfg Config) (Subpath, error) {
	cx, cy, r, err := c.Geometry()
	if err != nil {
		return Subpath{}, err
	}
	if r <= 0 {
		return Subpath{}, errors.Wrapf(ErrDegenerateInput, "radius %v", r)
	}
	t, err := elementTransform(c.transform, c.TransformString)
	if err != nil {
		return Subpath{}, err
	}
	t = ingestion(t)

	var radii Point
	if scale, ok := similarity(t); ok {
		radii = Point{X: r * scale, Y: r * scale}
	} else if axisAligned(t) {
		radii = Point{X: r * math.Abs(t[0][0]), Y: r * math.Abs(t[1][1])}
	} else {
		return Subpath{}, errors.Wrap(ErrUnsupportedCommand, "circle under a skewing or non-uniform rotating transform")
	}

	start := applyTransform(t, cx+r, cy)
	center := applyTransform(t, cx, cy)
	startAngle := ellipseAngle(center, radii, start)
	return Subpath{Segments: []Segment{
		{Kind: MoveSegment, Start: start, End: start},
		{
			Kind:       ArcSegment,
			Start:      start,
			End:        start,
			Center:     center,
			Radii:      radii,
			StartAngle: startAngle,
			EndAngle:   startAngle + 360,
			Steps:      cfg.CircleSteps,
		},
	}}, nil
}

// parseLength reads a plain or "px" suffixed number. An empty string is 0.
func parseLength(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedPathSyntax, "length %q", s)
	}
	return v, nil
}
