package svgdrive

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
	mt "github.com/rustyoz/Mtransform"
)

// Tracer turns an SVG element into robot-frame subpaths. All drawable
// elements implement this interface.
//
// Elements that fail to parse are reported as a Subpath with Err set, unless
// cfg.Strict is true, in which case the error is returned.
type Tracer interface {
	Trace(cfg Config) ([]Subpath, error)
}

// Svg represents an SVG document as the ordered list of its drawable
// elements. Groups are flattened; their transforms are folded into the
// elements they contain.
type Svg struct {
	Title    string
	Name     string
	Elements []Tracer
}

// Trace implements the Tracer interface by tracing every element in
// document order.
func (s *Svg) Trace(cfg Config) ([]Subpath, error) {
	var subpaths []Subpath
	for _, e := range s.Elements {
		sps, err := e.Trace(cfg)
		if err != nil {
			return nil, err
		}
		subpaths = append(subpaths, sps...)
	}
	return subpaths, nil
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	return s.decodeChildren(decoder, mt.Identity())
}

// decodeChildren collects drawable elements up to the end of the current
// element. Element names are matched on their local part so both
// namespace-qualified and plain documents are accepted.
func (s *Svg) decodeChildren(decoder *xml.Decoder, inherited mt.Transform) error {
	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			var tracer Tracer

			switch tok.Name.Local {
			case "g", "svg", "a":
				t, err := elementTransform(inherited, attr(tok, "transform"))
				if err != nil {
					return errors.Wrapf(err, "group %q", attr(tok, "id"))
				}
				if err := s.decodeChildren(decoder, t); err != nil {
					return err
				}
				continue
			case "title":
				var title string
				if err := decoder.DecodeElement(&title, &tok); err != nil {
					return err
				}
				if s.Title == "" {
					s.Title = strings.TrimSpace(title)
				}
				continue
			case "path":
				if attr(tok, "d") == "" {
					break
				}
				tracer = &Path{transform: inherited}
			case "circle":
				tracer = &Circle{transform: inherited}
			case "polyline":
				tracer = &PolyLine{transform: inherited}
			case "polygon":
				tracer = &PolyLine{Closed: true, transform: inherited}
			case "rect":
				tracer = &Rect{transform: inherited}
			}

			if tracer == nil {
				if err := decoder.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := decoder.DecodeElement(tracer, &tok); err != nil {
				return errors.Wrapf(err, "decoding %s element", tok.Name.Local)
			}
			s.Elements = append(s.Elements, tracer)

		case xml.EndElement:
			return nil
		}
	}
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// ParseSvg parses an SVG string into an Svg struct
func ParseSvg(str string, name string) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name)
}

// ParseSvgFromReader parses an Svg struct from an io.Reader
func ParseSvgFromReader(r io.Reader, name string) (*Svg, error) {
	svg := Svg{Name: name}
	if err := xml.NewDecoder(r).Decode(&svg); err != nil {
		return nil, errors.Wrap(err, "ParseSvg")
	}
	return &svg, nil
}

// skipOrFail reports an element error as a failed subpath, or returns it in
// strict mode. Degenerate elements are never fatal.
func skipOrFail(cfg Config, err error) ([]Subpath, error) {
	if cfg.Strict && !errors.Is(err, ErrDegenerateInput) {
		return nil, err
	}
	return []Subpath{{Err: err}}, nil
}
