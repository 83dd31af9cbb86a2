package svgdrive

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// CommandKind tells the actuator which primitive to run.
type CommandKind int

// These are the motion primitives of a robot that turns in place and drives
// straight.
const (
	TurnLeft CommandKind = iota
	TurnRight
	MoveForward
)

func (k CommandKind) String() string {
	switch k {
	case TurnLeft:
		return "turn_left"
	case TurnRight:
		return "turn_right"
	case MoveForward:
		return "move_forward"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is one motion primitive. Value is degrees for turns and distance
// units for moves, and is never negative.
type Command struct {
	Kind  CommandKind
	Value float64
}

func (c Command) String() string {
	return fmt.Sprintf("%s(%.3f)", c.Kind, c.Value)
}

// normalizeDelta folds an angle difference into (-180, 180].
func normalizeDelta(delta float64) float64 {
	for delta > 180 {
		delta -= 360
	}
	for delta <= -180 {
		delta += 360
	}
	return delta
}

// Emitter converts consecutive points into relative turns and forward
// moves, tracking the absolute heading across calls.
type Emitter struct {
	cfg     Config
	heading float64
	logger  *zap.SugaredLogger
}

// NewEmitter returns an emitter facing along the positive x axis.
func NewEmitter(cfg Config, logger *zap.SugaredLogger) *Emitter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Emitter{cfg: cfg, logger: logger}
}

// Heading returns the absolute heading in degrees after the last step. It is
// not normalised.
func (e *Emitter) Heading() float64 {
	return e.heading
}

// Step returns the commands that take the robot from `from` to `to`. A
// zero-length step yields nothing and leaves the heading alone.
//
// Rotations below the configured threshold are not issued, but the heading
// still snaps to the target so small errors do not accumulate. A rotation of
// exactly 180 degrees is always issued as a right turn.
func (e *Emitter) Step(from, to Point) []Command {
	dist := from.Distance(to) * e.cfg.Scale
	if from == to || dist == 0 {
		return nil
	}

	var cmds []Command
	target := from.Angle(to) + e.cfg.AngleOffset
	delta := normalizeDelta(target - e.heading)
	switch {
	case delta == 0:
	case math.Abs(delta) < e.cfg.TurnThreshold:
		e.logger.Debugw("suppressing turn", "delta", delta, "threshold", e.cfg.TurnThreshold)
	case delta > 0 && delta < 180:
		cmds = append(cmds, Command{Kind: TurnLeft, Value: delta})
	default:
		cmds = append(cmds, Command{Kind: TurnRight, Value: math.Abs(delta)})
	}
	e.heading = target

	cmds = append(cmds, Command{Kind: MoveForward, Value: dist})
	e.logger.Debugw("step", "from", from, "to", to, "heading", e.heading, "commands", cmds)
	return cmds
}

// Walk emits the commands for every consecutive pair of pts.
func (e *Emitter) Walk(pts []Point) []Command {
	var cmds []Command
	for i := 1; i < len(pts); i++ {
		cmds = append(cmds, e.Step(pts[i-1], pts[i])...)
	}
	return cmds
}
