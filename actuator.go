package svgdrive

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

// Actuator executes motion primitives. Each call blocks until the motion
// has finished or failed.
type Actuator interface {
	TurnLeft(ctx context.Context, angleDeg float64) error
	TurnRight(ctx context.Context, angleDeg float64) error
	MoveForward(ctx context.Context, distance float64) error
}

// Do runs cmd on act.
func Do(ctx context.Context, act Actuator, cmd Command) error {
	switch cmd.Kind {
	case TurnLeft:
		return act.TurnLeft(ctx, cmd.Value)
	case TurnRight:
		return act.TurnRight(ctx, cmd.Value)
	case MoveForward:
		return act.MoveForward(ctx, cmd.Value)
	}
	return errors.Errorf("unknown command kind %v", cmd.Kind)
}

// Base is the subset of a differential-drive base used to execute a
// trajectory. A positive spin angle turns counter-clockwise.
type Base interface {
	Spin(ctx context.Context, angleDeg, degsPerSec float64, extra map[string]interface{}) error
	MoveStraight(ctx context.Context, distanceMm int, mmPerSec float64, extra map[string]interface{}) error
}

// BaseActuator drives a Base at fixed speeds.
type BaseActuator struct {
	Base Base
	// DegsPerSec is the spin speed.
	DegsPerSec float64
	// MmPerSec is the straight-line speed.
	MmPerSec float64
	// MmPerUnit converts the planner's distance unit into millimetres.
	MmPerUnit float64
}

// NewBaseActuator returns an actuator for b with moderate default speeds,
// treating planner distances as millimetres.
func NewBaseActuator(b Base) *BaseActuator {
	return &BaseActuator{Base: b, DegsPerSec: 45, MmPerSec: 100, MmPerUnit: 1}
}

// TurnLeft spins the base counter-clockwise.
func (a *BaseActuator) TurnLeft(ctx context.Context, angleDeg float64) error {
	return errors.Wrap(a.Base.Spin(ctx, angleDeg, a.DegsPerSec, nil), "turn left")
}

// TurnRight spins the base clockwise.
func (a *BaseActuator) TurnRight(ctx context.Context, angleDeg float64) error {
	return errors.Wrap(a.Base.Spin(ctx, -angleDeg, a.DegsPerSec, nil), "turn right")
}

// MoveForward drives the base straight, rounding to whole millimetres.
func (a *BaseActuator) MoveForward(ctx context.Context, distance float64) error {
	mm := int(math.Round(distance * a.MmPerUnit))
	if mm == 0 {
		return nil
	}
	return errors.Wrap(a.Base.MoveStraight(ctx, mm, a.MmPerSec, nil), "move forward")
}
