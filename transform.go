package svgdrive

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	mt "github.com/rustyoz/Mtransform"
	gl "github.com/rustyoz/genericlexer"
)

var transformPattern = regexp.MustCompile(`([A-Za-z]+)\s*\(([^)]*)\)`)

// robotFrame flips the SVG y-down frame into the y-up robot frame. It is the
// only place where the sign of y changes.
func robotFrame() mt.Transform {
	t := mt.Identity()
	t[1][1] = -1
	return t
}

// ingestion returns the transform applied once to every parsed point: the
// element's own transform, then its ancestors', then the robot frame flip.
func ingestion(element mt.Transform) mt.Transform {
	return mt.MultiplyTransforms(robotFrame(), element)
}

func applyTransform(t mt.Transform, x, y float64) Point {
	x, y = t.Apply(x, y)
	return Point{X: x, Y: y}
}

// axisAligned reports whether t maps axis-aligned ellipses onto
// axis-aligned ellipses, which is what arc tracing requires.
func axisAligned(t mt.Transform) bool {
	return t[0][1] == 0 && t[1][0] == 0
}

func determinant(t mt.Transform) float64 {
	return t[0][0]*t[1][1] - t[0][1]*t[1][0]
}

// similarity reports whether t maps circles onto circles, a rotation or
// reflection with uniform scale, and returns that scale.
func similarity(t mt.Transform) (float64, bool) {
	det := determinant(t)
	if det == 0 {
		return 0, false
	}
	scale := math.Sqrt(math.Abs(det))
	near := func(a, b float64) bool {
		return math.Abs(a-b) <= 1e-9*scale
	}
	rotating := near(t[0][0], t[1][1]) && near(t[0][1], -t[1][0])
	mirroring := near(t[0][0], -t[1][1]) && near(t[0][1], t[1][0])
	return scale, rotating || mirroring
}

// parseTransform interprets an SVG transform attribute such as
// "translate(10,20) rotate(45)". The functions are composed left to right.
func parseTransform(s string) (mt.Transform, error) {
	result := mt.Identity()
	s = strings.TrimSpace(s)
	if s == "" {
		return result, nil
	}

	matches := transformPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return result, errors.Wrapf(ErrMalformedPathSyntax, "transform %q", s)
	}
	for _, m := range matches {
		args, err := lexNumbers(m[1], m[2])
		if err != nil {
			return result, errors.Wrapf(err, "transform %q", m[0])
		}
		step, err := transformFunction(m[1], args)
		if err != nil {
			return result, err
		}
		result = mt.MultiplyTransforms(result, step)
	}
	return result, nil
}

func transformFunction(name string, args []float64) (mt.Transform, error) {
	t := mt.Identity()
	bad := func() (mt.Transform, error) {
		return t, errors.Wrapf(ErrMalformedPathSyntax, "%s: unexpected argument count %d", name, len(args))
	}

	switch name {
	case "matrix":
		if len(args) != 6 {
			return bad()
		}
		t[0][0], t[1][0] = args[0], args[1]
		t[0][1], t[1][1] = args[2], args[3]
		t[0][2], t[1][2] = args[4], args[5]
	case "translate":
		switch len(args) {
		case 1:
			t[0][2] = args[0]
		case 2:
			t[0][2], t[1][2] = args[0], args[1]
		default:
			return bad()
		}
	case "scale":
		switch len(args) {
		case 1:
			t[0][0], t[1][1] = args[0], args[0]
		case 2:
			t[0][0], t[1][1] = args[0], args[1]
		default:
			return bad()
		}
	case "rotate":
		if len(args) != 1 && len(args) != 3 {
			return bad()
		}
		sin, cos := math.Sincos(args[0] * math.Pi / 180)
		t[0][0], t[0][1] = cos, -sin
		t[1][0], t[1][1] = sin, cos
		if len(args) == 3 {
			cx, cy := args[1], args[2]
			t[0][2] = cx - cos*cx + sin*cy
			t[1][2] = cy - sin*cx - cos*cy
		}
	case "skewX":
		if len(args) != 1 {
			return bad()
		}
		t[0][1] = math.Tan(args[0] * math.Pi / 180)
	case "skewY":
		if len(args) != 1 {
			return bad()
		}
		t[1][0] = math.Tan(args[0] * math.Pi / 180)
	default:
		return t, errors.Wrapf(ErrUnsupportedCommand, "transform function %q", name)
	}
	return t, nil
}

// lexNumbers reads a comma or whitespace separated list of numbers.
func lexNumbers(name, s string) ([]float64, error) {
	var nums []float64
	s = strings.ReplaceAll(s, ",", " ")
	l, _ := gl.Lex(name, s)
	for {
		l.ConsumeWhiteSpace()
		i := l.NextItem()
		switch i.Type {
		case gl.ItemEOS:
			// the lexer also stops early on a number it cannot finish,
			// such as "1.5.5"
			if rest := strings.TrimSpace(numberPattern.ReplaceAllString(s, " ")); rest != "" {
				return nil, errors.Wrapf(ErrMalformedPathSyntax, "%s: unexpected %q", name, rest)
			}
			if want := len(numberPattern.FindAllString(s, -1)); want != len(nums) {
				return nil, errors.Wrapf(ErrMalformedPathSyntax, "%s: read %d of %d numbers in %q", name, len(nums), want, s)
			}
			return nums, nil
		case gl.ItemNumber:
			n, err := parseNumber(i)
			if err != nil {
				return nil, err
			}
			nums = append(nums, n)
		default:
			return nil, errors.Wrapf(ErrMalformedPathSyntax, "expected number, got %q", i.Value)
		}
	}
}

func parseNumber(i gl.Item) (float64, error) {
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedPathSyntax, "number %q", i.Value)
	}
	return n, nil
}

// parseTuples reads an even-length list of numbers as coordinate pairs.
func parseTuples(name, s string) ([][2]float64, error) {
	nums, err := lexNumbers(name, s)
	if err != nil {
		return nil, err
	}
	if len(nums)%2 != 0 {
		return nil, errors.Wrapf(ErrMalformedPathSyntax, "%s: odd coordinate count %d", name, len(nums))
	}
	tuples := make([][2]float64, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		tuples = append(tuples, [2]float64{nums[i], nums[i+1]})
	}
	return tuples, nil
}
