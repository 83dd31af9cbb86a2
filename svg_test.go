package svgdrive

import (
	"math"
	"strings"
	"testing"

	"github.com/cheekybits/is"
	"github.com/pkg/errors"
)

const testSvg = `<?xml version="1.0" encoding="utf-8"?>
<!-- Generator: Adobe Illustrator 15.0.2, SVG Export Plug-In . SVG Version: 6.00 Build 0)  -->
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg version="1.1" id="Layer_1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" x="0px" y="0px"
	 width="595.201px" height="841.922px" viewBox="0 0 595.201 841.922" enable-background="new 0 0 595.201 841.922"
	 xml:space="preserve">
<rect x="207" y="53" fill="#009FE3" width="181.667" height="85.333"/>
<text transform="matrix(1 0 0 1 232.3306 107.5952)" fill="#FFFFFF" font-family="'ArialMT'" font-size="31.9752">PODIUM</text>
</svg>`

func TestParse(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(testSvg, "test")
	is.NoErr(err)
	is.NotNil(svg)
	is.Equal(len(svg.Elements), 1)

	svg, err = ParseSvgFromReader(strings.NewReader(testSvg), "test")
	is.NoErr(err)
	is.NotNil(svg)
	is.Equal(svg.Name, "test")

	_, err = ParseSvg(`<svg><path d="M0 0"`, "broken")
	is.Err(err)
}

const orderSvg = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:svg="http://www.w3.org/2000/svg">
	<title> Drawing </title>
	<defs><path id="hidden" d="M0 0 L1 1"/></defs>
	<svg:path id="first" d="M0 0 L10 0"/>
	<g transform="translate(100)">
		<circle id="second" cx="1" cy="2" r="3px"/>
		<g><polygon id="third" points="0,0 1,0 1,1"/></g>
	</g>
	<polyline id="fourth" points="0 0 5 5"/>
	<path id="empty" d=""/>
	<rect id="fifth" x="1" y="1" width="2" height="3"/>
</svg>`

func TestParseDocumentOrder(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(orderSvg, "order")
	is.NoErr(err)
	is.Equal(svg.Title, "Drawing")
	is.Equal(len(svg.Elements), 5)

	is.Equal(svg.Elements[0].(*Path).ID, "first")
	is.Equal(svg.Elements[1].(*Circle).ID, "second")
	polygon := svg.Elements[2].(*PolyLine)
	is.Equal(polygon.ID, "third")
	is.True(polygon.Closed)
	polyline := svg.Elements[3].(*PolyLine)
	is.Equal(polyline.ID, "fourth")
	is.False(polyline.Closed)
	is.Equal(svg.Elements[4].(*Rect).ID, "fifth")
}

func TestTraceDocument(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(orderSvg, "order")
	is.NoErr(err)

	subpaths, err := svg.Trace(DefaultConfig())
	is.NoErr(err)
	is.Equal(len(subpaths), 5)
	for _, sp := range subpaths {
		is.NoErr(sp.Err)
	}

	// the group translation reaches nested elements
	is.Equal(subpaths[1].Start(), Pt(104, -2))
	is.Equal(subpaths[2].Start(), Pt(100, 0))

	polygon := subpaths[2].Segments
	is.Equal(len(polygon), 4)
	is.Equal(polygon[3].Kind, CloseSegment)
	is.Equal(polygon[3].End, Pt(100, 0))

	is.Equal(len(subpaths[3].Segments), 2)

	rect := subpaths[4].Segments
	is.Equal(len(rect), 5)
	is.Equal(rect[1].End, Pt(3, -1))
	is.Equal(rect[2].End, Pt(3, -4))
}

func TestTraceCircle(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.CircleSteps = 8

	subpaths, err := NewCircle(10, 20, 5).Trace(cfg)
	is.NoErr(err)
	is.Equal(len(subpaths), 1)

	segs := subpaths[0].Segments
	is.Equal(len(segs), 2)
	is.Equal(segs[0].Kind, MoveSegment)
	is.Equal(segs[1].Kind, ArcSegment)
	is.Equal(segs[1].Start, Pt(15, -20))
	is.Equal(segs[1].Center, Pt(10, -20))
	is.Equal(segs[1].EndAngle-segs[1].StartAngle, 360.0)
	is.Equal(stepsFor(segs[1], cfg), 8)
}

func TestTraceRotatedCircle(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(`<svg><g transform="rotate(30)"><circle cx="10" cy="0" r="5"/></g></svg>`, "rotated")
	is.NoErr(err)
	subpaths, err := svg.Trace(DefaultConfig())
	is.NoErr(err)
	is.Equal(len(subpaths), 1)
	is.NoErr(subpaths[0].Err)

	arc := subpaths[0].Segments[1]
	is.True(math.Abs(arc.Radii.X-5) < 1e-9)
	is.True(math.Abs(arc.Radii.Y-5) < 1e-9)
	is.True(arc.Center.Distance(Pt(10*math.Sqrt(3)/2, -5)) < 1e-9)
	is.True(arc.Start.Distance(Pt(15*math.Sqrt(3)/2, -7.5)) < 1e-9)

	pts, err := Flatten(arc, 16)
	is.NoErr(err)
	for _, p := range pts {
		is.True(math.Abs(p.Distance(arc.Center)-5) < 1e-9)
	}

	// uniform scaling grows the radius
	subpaths, err = (&Circle{Radius: "1", TransformString: "rotate(45) scale(3)"}).Trace(DefaultConfig())
	is.NoErr(err)
	is.NoErr(subpaths[0].Err)
	is.True(math.Abs(subpaths[0].Segments[1].Radii.X-3) < 1e-9)

	// a rotated ellipse cannot be traced
	subpaths, err = (&Circle{Radius: "1", TransformString: "rotate(30) scale(2,1)"}).Trace(DefaultConfig())
	is.NoErr(err)
	is.True(errors.Is(subpaths[0].Err, ErrUnsupportedCommand))
}

func TestTraceSkipsBadElements(t *testing.T) {
	is := is.New(t)

	for _, tracer := range []Tracer{
		NewCircle(0, 0, 0),
		&Circle{Radius: "ten"},
		&Rect{Width: "0", Height: "10"},
		&PolyLine{Points: "1 2 3"},
		&Path{D: "M0 0 L1 1", TransformString: "wobble(3)"},
	} {
		subpaths, err := tracer.Trace(DefaultConfig())
		is.NoErr(err)
		is.Equal(len(subpaths), 1)
		is.Err(subpaths[0].Err)
	}

	cfg := DefaultConfig()
	cfg.Strict = true

	// degenerate shapes never abort
	subpaths, err := NewCircle(0, 0, 0).Trace(cfg)
	is.NoErr(err)
	is.True(errors.Is(subpaths[0].Err, ErrDegenerateInput))

	_, err = (&PolyLine{Points: "1 2 3"}).Trace(cfg)
	is.True(errors.Is(err, ErrMalformedPathSyntax))

	_, err = (&Circle{Radius: "1", TransformString: "skewX(20)"}).Trace(cfg)
	is.True(errors.Is(err, ErrUnsupportedCommand))
}

func TestTraceEmptyPolyline(t *testing.T) {
	is := is.New(t)

	subpaths, err := (&PolyLine{}).Trace(DefaultConfig())
	is.NoErr(err)
	is.Equal(len(subpaths), 0)
}
