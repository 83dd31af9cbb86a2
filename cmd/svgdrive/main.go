// Package main plans a robot trajectory for an SVG drawing and dry-runs it on
// a simulated base.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vasalvit/svgdrive"
	"github.com/vasalvit/svgdrive/fake"
)

const (
	// Flags.
	flagPath        = "path"
	flagCircle      = "circle"
	flagStrict      = "strict"
	flagScale       = "scale"
	flagCurveSteps  = "curve-steps"
	flagArcSteps    = "arc-steps"
	flagCircleSteps = "circle-steps"
	flagThreshold   = "threshold"
	flagAngleOffset = "angle-offset"
	flagDebug       = "debug"
)

func envVar(flag string) []string {
	return []string{"SVGDRIVE_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))}
}

func main() {
	var logger *zap.SugaredLogger
	defaults := svgdrive.DefaultConfig()

	app := &cli.App{
		Name:      "svgdrive",
		Usage:     "drive a turn-and-move robot along an SVG drawing",
		ArgsUsage: "[FILE.svg]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagPath,
				Usage: "trace the path description `D` instead of a file",
			},
			&cli.StringFlag{
				Name:  flagCircle,
				Usage: "trace a circle given as `CX,CY,R` instead of a file",
			},
			&cli.BoolFlag{
				Name:    flagStrict,
				EnvVars: envVar(flagStrict),
				Usage:   "abort on the first malformed or unsupported command",
			},
			&cli.Float64Flag{
				Name:    flagScale,
				EnvVars: envVar(flagScale),
				Value:   defaults.Scale,
				Usage:   "distance units per drawing unit",
			},
			&cli.IntFlag{
				Name:    flagCurveSteps,
				EnvVars: envVar(flagCurveSteps),
				Value:   defaults.CurveSteps,
				Usage:   "chords per Bézier curve",
			},
			&cli.IntFlag{
				Name:    flagArcSteps,
				EnvVars: envVar(flagArcSteps),
				Value:   defaults.ArcSteps,
				Usage:   "chords per elliptical arc",
			},
			&cli.IntFlag{
				Name:    flagCircleSteps,
				EnvVars: envVar(flagCircleSteps),
				Value:   defaults.CircleSteps,
				Usage:   "chords per circle",
			},
			&cli.Float64Flag{
				Name:    flagThreshold,
				EnvVars: envVar(flagThreshold),
				Value:   defaults.TurnThreshold,
				Usage:   "smallest turn, in degrees, that is issued",
			},
			&cli.Float64Flag{
				Name:    flagAngleOffset,
				EnvVars: envVar(flagAngleOffset),
				Value:   defaults.AngleOffset,
				Usage:   "degrees added to every target heading",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				EnvVars: envVar(flagDebug),
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			zcfg := zap.NewDevelopmentConfig()
			if !c.Bool(flagDebug) {
				zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
			}
			l, err := zcfg.Build()
			if err != nil {
				return err
			}
			logger = l.Sugar()
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				//nolint:errcheck
				logger.Sync()
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func configFromFlags(c *cli.Context) svgdrive.Config {
	return svgdrive.Config{
		Scale:         c.Float64(flagScale),
		CurveSteps:    c.Int(flagCurveSteps),
		ArcSteps:      c.Int(flagArcSteps),
		CircleSteps:   c.Int(flagCircleSteps),
		TurnThreshold: c.Float64(flagThreshold),
		AngleOffset:   c.Float64(flagAngleOffset),
		Strict:        c.Bool(flagStrict),
	}
}

func shapesFromFlags(c *cli.Context) ([]svgdrive.Tracer, error) {
	switch {
	case c.IsSet(flagPath):
		return []svgdrive.Tracer{svgdrive.NewPath(c.String(flagPath))}, nil
	case c.IsSet(flagCircle):
		circle, err := parseCircle(c.String(flagCircle))
		if err != nil {
			return nil, err
		}
		return []svgdrive.Tracer{circle}, nil
	case c.NArg() == 1:
		name := c.Args().First()
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		doc, err := svgdrive.ParseSvgFromReader(f, name)
		if err != nil {
			return nil, err
		}
		return []svgdrive.Tracer{doc}, nil
	}
	return nil, errors.New("expected one SVG file, --path or --circle")
}

func parseCircle(s string) (*svgdrive.Circle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, errors.Errorf("circle %q: expected cx,cy,r", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "circle %q", s)
		}
		v[i] = f
	}
	return svgdrive.NewCircle(v[0], v[1], v[2]), nil
}

func run(c *cli.Context, logger *zap.SugaredLogger) error {
	shapes, err := shapesFromFlags(c)
	if err != nil {
		return err
	}
	drv, err := svgdrive.NewDriver(configFromFlags(c), logger)
	if err != nil {
		return err
	}

	plan, err := drv.Plan(shapes...)
	if err != nil {
		return err
	}
	for _, diag := range multierr.Errors(plan.Diagnostics) {
		logger.Warnw("diagnostic", "error", diag)
	}
	for _, cmd := range plan.Commands {
		fmt.Fprintln(c.App.Writer, cmd)
	}

	base := fake.NewBase(r2.Point{X: plan.Start.X, Y: plan.Start.Y})
	if err := drv.Execute(context.Background(), base, plan); err != nil {
		return err
	}
	logger.Infow("simulated run finished",
		"commands", len(base.Commands),
		"position", fmt.Sprintf("(%.3f, %.3f)", base.Position.X, base.Position.Y),
		"heading", base.NormalizedHeading(),
	)
	return nil
}
