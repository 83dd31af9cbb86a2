// Package fake implements a simulated differential-drive base.
package fake

import (
	"context"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/vasalvit/svgdrive"
)

// ErrInjected is returned once FailAt commands have been executed.
var ErrInjected = errors.New("injected base failure")

// Base is an ideal base that executes every motion exactly and keeps track
// of its pose. It implements both svgdrive.Actuator and svgdrive.Base.
type Base struct {
	// Position is the dead-reckoned position, in actuator distance units.
	Position r2.Point
	// Heading is the absolute heading in degrees, counter-clockwise from +x.
	Heading float64
	// Commands records every executed command in order.
	Commands []svgdrive.Command
	// FailAt, when positive, makes the FailAt-th command (1-based) fail.
	FailAt int
}

// NewBase returns a base at pos facing along +x.
func NewBase(pos r2.Point) *Base {
	return &Base{Position: pos}
}

func (b *Base) record(cmd svgdrive.Command) error {
	if b.FailAt > 0 && len(b.Commands)+1 == b.FailAt {
		return ErrInjected
	}
	b.Commands = append(b.Commands, cmd)
	return nil
}

// TurnLeft rotates counter-clockwise.
func (b *Base) TurnLeft(ctx context.Context, angleDeg float64) error {
	if err := b.record(svgdrive.Command{Kind: svgdrive.TurnLeft, Value: angleDeg}); err != nil {
		return err
	}
	b.Heading += angleDeg
	return nil
}

// TurnRight rotates clockwise.
func (b *Base) TurnRight(ctx context.Context, angleDeg float64) error {
	if err := b.record(svgdrive.Command{Kind: svgdrive.TurnRight, Value: angleDeg}); err != nil {
		return err
	}
	b.Heading -= angleDeg
	return nil
}

// MoveForward drives along the current heading.
func (b *Base) MoveForward(ctx context.Context, distance float64) error {
	if err := b.record(svgdrive.Command{Kind: svgdrive.MoveForward, Value: distance}); err != nil {
		return err
	}
	sin, cos := math.Sincos(b.Heading * math.Pi / 180)
	b.Position = b.Position.Add(r2.Point{X: cos, Y: sin}.Mul(distance))
	return nil
}

// Spin turns in place; positive angles are counter-clockwise.
func (b *Base) Spin(ctx context.Context, angleDeg, degsPerSec float64, extra map[string]interface{}) error {
	if angleDeg < 0 {
		return b.TurnRight(ctx, -angleDeg)
	}
	return b.TurnLeft(ctx, angleDeg)
}

// MoveStraight drives forward distanceMm, treating one millimetre as one
// distance unit.
func (b *Base) MoveStraight(ctx context.Context, distanceMm int, mmPerSec float64, extra map[string]interface{}) error {
	if distanceMm < 0 {
		return errors.Errorf("cannot move backwards %d mm", distanceMm)
	}
	return b.MoveForward(ctx, float64(distanceMm))
}

// NormalizedHeading returns the heading folded into [0, 360).
func (b *Base) NormalizedHeading() float64 {
	h := math.Mod(b.Heading, 360)
	if h < 0 {
		h += 360
	}
	return h
}
