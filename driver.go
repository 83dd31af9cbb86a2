package svgdrive

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Plan is the ordered command stream for a set of shapes.
type Plan struct {
	// Start is where the robot is assumed to stand, facing along +x, before
	// the first command. It is the first point of the first traced subpath.
	Start Point
	// End is the last point visited.
	End      Point
	Commands []Command
	// Heading is the absolute heading after the last command.
	Heading float64
	// Diagnostics collects the errors of skipped and degenerate subpaths.
	Diagnostics error
}

// Driver plans trajectories from SVG shapes and runs them on an actuator.
type Driver struct {
	cfg    Config
	logger *zap.SugaredLogger
}

// NewDriver returns a driver for cfg. A nil logger discards all output.
func NewDriver(cfg Config, logger *zap.SugaredLogger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Driver{cfg: cfg, logger: logger}, nil
}

// Plan traces the shapes in order and converts them into one command
// stream. Consecutive subpaths are joined by a straight travel move.
//
// Subpaths that failed to parse or have nothing to traverse are skipped and
// recorded in the plan's Diagnostics. In strict mode a parse error aborts
// planning instead.
func (d *Driver) Plan(shapes ...Tracer) (*Plan, error) {
	plan := &Plan{}
	em := NewEmitter(d.cfg, d.logger)
	started := false

	skip := func(err error) {
		d.logger.Warnw("skipping subpath", "error", err)
		plan.Diagnostics = multierr.Append(plan.Diagnostics, err)
	}

	for i, shape := range shapes {
		subpaths, err := shape.Trace(d.cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d", i)
		}
		d.logger.Infow("planning shape", "shape", i, "subpaths", len(subpaths))

		for j, sp := range subpaths {
			if sp.Err != nil {
				skip(errors.Wrapf(sp.Err, "shape %d", i))
				continue
			}
			pts, err := FlattenSubpath(sp, d.cfg)
			if err != nil {
				return nil, errors.Wrapf(err, "shape %d, subpath %d", i, j)
			}
			if !traversable(pts) {
				skip(errors.Wrapf(ErrDegenerateInput, "shape %d, subpath %d: nothing to traverse", i, j))
				continue
			}

			if !started {
				plan.Start, plan.End = pts[0], pts[0]
				started = true
			}
			if plan.End != pts[0] {
				d.logger.Debugw("travelling to subpath", "from", plan.End, "to", pts[0])
				plan.Commands = append(plan.Commands, em.Step(plan.End, pts[0])...)
			}
			plan.Commands = append(plan.Commands, em.Walk(pts)...)
			plan.End = pts[len(pts)-1]
		}
	}

	if !started {
		skip(errors.Wrap(ErrDegenerateInput, "no traversable subpath"))
	}
	plan.Heading = em.Heading()
	d.logger.Infow("planned trajectory", "commands", len(plan.Commands), "heading", plan.Heading)
	return plan, nil
}

// traversable reports whether pts holds at least two distinct points.
func traversable(pts []Point) bool {
	if len(pts) < 2 {
		return false
	}
	for _, p := range pts[1:] {
		if p != pts[0] {
			return true
		}
	}
	return false
}

// Execute issues the plan's commands to act strictly in order. The first
// failing command stops execution; it is not retried. Cancellation of ctx is
// honoured between commands.
func (d *Driver) Execute(ctx context.Context, act Actuator, plan *Plan) error {
	for i, cmd := range plan.Commands {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "stopped before command %d", i)
		}
		d.logger.Debugw("executing", "index", i, "command", cmd)
		if err := Do(ctx, act, cmd); err != nil {
			return errors.Wrapf(err, "command %d (%v)", i, cmd)
		}
	}
	return nil
}

// Run plans the shapes and executes the result on act.
func (d *Driver) Run(ctx context.Context, act Actuator, shapes ...Tracer) (*Plan, error) {
	plan, err := d.Plan(shapes...)
	if err != nil {
		return nil, err
	}
	return plan, d.Execute(ctx, act, plan)
}
