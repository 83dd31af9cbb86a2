package svgdrive

import (
	"github.com/pkg/errors"
	mt "github.com/rustyoz/Mtransform"
)

// PolyLine is an SVG polyline or polygon element: a set of connected line
// segments, closed back to the first point for polygons.
type PolyLine struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	Points          string `xml:"points,attr"`
	Closed          bool   `xml:"-"`

	transform mt.Transform
}

// Trace implements the Tracer interface.
func (pl *PolyLine) Trace(cfg Config) ([]Subpath, error) {
	tuples, err := parseTuples("points", pl.Points)
	if err != nil {
		return skipOrFail(cfg, errors.Wrapf(err, "polyline %q", pl.ID))
	}
	if len(tuples) == 0 {
		return nil, nil
	}

	t, err := elementTransform(pl.transform, pl.TransformString)
	if err != nil {
		return skipOrFail(cfg, errors.Wrapf(err, "polyline %q", pl.ID))
	}
	return []Subpath{polylineSubpath(ingestion(t), tuples, pl.Closed)}, nil
}

func polylineSubpath(t mt.Transform, tuples [][2]float64, closed bool) Subpath {
	first := applyTransform(t, tuples[0][0], tuples[0][1])
	segs := []Segment{{Kind: MoveSegment, Start: first, End: first}}
	prev := first
	for _, tp := range tuples[1:] {
		p := applyTransform(t, tp[0], tp[1])
		segs = append(segs, Segment{Kind: LineSegment, Start: prev, End: p})
		prev = p
	}
	if closed {
		segs = append(segs, Segment{Kind: CloseSegment, Start: prev, End: first})
	}
	return Subpath{Segments: segs}
}

// Rect is an SVG rect element. Rounded corners are traced as sharp ones.
type Rect struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	X               string `xml:"x,attr"`
	Y               string `xml:"y,attr"`
	Width           string `xml:"width,attr"`
	Height          string `xml:"height,attr"`

	transform mt.Transform
}

// Trace implements the Tracer interface. The outline starts at (x, y) and
// runs along the top edge first.
func (r *Rect) Trace(cfg Config) ([]Subpath, error) {
	var dims [4]float64
	for i, s := range []string{r.X, r.Y, r.Width, r.Height} {
		v, err := parseLength(s)
		if err != nil {
			return skipOrFail(cfg, errors.Wrapf(err, "rect %q", r.ID))
		}
		dims[i] = v
	}
	x, y, w, h := dims[0], dims[1], dims[2], dims[3]
	if w <= 0 || h <= 0 {
		return skipOrFail(cfg, errors.Wrapf(ErrDegenerateInput, "rect %q: %vx%v", r.ID, w, h))
	}

	t, err := elementTransform(r.transform, r.TransformString)
	if err != nil {
		return skipOrFail(cfg, errors.Wrapf(err, "rect %q", r.ID))
	}
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	return []Subpath{polylineSubpath(ingestion(t), corners, true)}, nil
}
