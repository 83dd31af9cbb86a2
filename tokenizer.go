package svgdrive

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const commandLetters = "MmLlHhVvCcSsQqTtAaZz"

var (
	commandPattern = regexp.MustCompile(`([` + commandLetters + `])([^` + commandLetters + `]*)`)
	numberPattern  = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
	// a minus glued to the previous number, "5-3" or "1.5-2"
	gluedMinus = regexp.MustCompile(`([\d.])-`)
)

// Token is one command letter of a path description together with the raw
// argument text that followed it.
type Token struct {
	Command byte
	Args    string
}

// Relative reports whether the command is a lower-case, relative command.
func (t Token) Relative() bool {
	return t.Command >= 'a' && t.Command <= 'z'
}

// Upper returns the absolute form of the command letter.
func (t Token) Upper() byte {
	if t.Relative() {
		return t.Command - 'a' + 'A'
	}
	return t.Command
}

func (t Token) String() string {
	if t.Args == "" {
		return string(t.Command)
	}
	return string(t.Command) + " " + t.Args
}

// arity is the number of numbers one repetition of a command consumes.
func arity(cmd byte) int {
	switch cmd {
	case 'M', 'L', 'T':
		return 2
	case 'H', 'V':
		return 1
	case 'C':
		return 6
	case 'S', 'Q':
		return 4
	case 'A':
		return 7
	}
	return 0
}

// Tokenize splits a path description into command tokens. Separators are
// normalised first so that "10,20", "10 20" and "10-20" all yield two
// numbers for the following numeric extraction.
func Tokenize(d string) ([]Token, error) {
	d = normalizeSeparators(d)
	locs := commandPattern.FindAllStringSubmatchIndex(d, -1)
	if len(locs) == 0 {
		if strings.TrimSpace(d) != "" {
			return nil, errors.Wrapf(ErrMalformedPathSyntax, "no command in %q", d)
		}
		return nil, nil
	}
	if lead := strings.TrimSpace(d[:locs[0][0]]); lead != "" {
		return nil, errors.Wrapf(ErrMalformedPathSyntax, "unexpected %q before first command", lead)
	}

	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		tokens = append(tokens, Token{
			Command: d[loc[2]],
			Args:    strings.TrimSpace(d[loc[4]:loc[5]]),
		})
	}
	return tokens, nil
}

func normalizeSeparators(d string) string {
	d = strings.ReplaceAll(d, ",", " ")
	// applied twice since the regexp matches do not overlap: "1-2-3"
	d = gluedMinus.ReplaceAllString(d, "$1 -")
	return gluedMinus.ReplaceAllString(d, "$1 -")
}

// Numbers extracts the numeric arguments of the token and checks that their
// count is a whole number of repetitions of the command.
func (t Token) Numbers() ([]float64, error) {
	if rest := strings.TrimSpace(numberPattern.ReplaceAllString(t.Args, " ")); rest != "" {
		return nil, errors.Wrapf(ErrMalformedPathSyntax, "command %q: unexpected %q", t.Command, rest)
	}

	raw := numberPattern.FindAllString(t.Args, -1)
	n := arity(t.Upper())
	switch {
	case n == 0 && len(raw) > 0:
		return nil, errors.Wrapf(ErrMalformedPathSyntax, "command %q takes no arguments, got %d", t.Command, len(raw))
	case n > 0 && (len(raw) == 0 || len(raw)%n != 0):
		return nil, errors.Wrapf(ErrMalformedPathSyntax,
			"command %q: %d arguments is not a multiple of %d", t.Command, len(raw), n)
	}

	nums := make([]float64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedPathSyntax, "command %q: %v", t.Command, err)
		}
		nums[i] = v
	}
	return nums, nil
}
