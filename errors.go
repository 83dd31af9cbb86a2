package svgdrive

import "github.com/pkg/errors"

var (
	// ErrMalformedPathSyntax is returned when a command carries an invalid or
	// incomplete argument list.
	ErrMalformedPathSyntax = errors.New("malformed path syntax")

	// ErrUnsupportedCommand is returned for recognised commands whose variant
	// cannot be traced, such as a rotated elliptical arc.
	ErrUnsupportedCommand = errors.New("unsupported command")

	// ErrDegenerateInput marks a subpath with fewer than two usable points.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrUnknownSegment is returned by switches over SegmentKind for a kind
	// they do not handle.
	ErrUnknownSegment = errors.New("unknown segment kind")
)
