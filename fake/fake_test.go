package fake

import (
	"context"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/vasalvit/svgdrive"
)

func TestBaseDeadReckoning(t *testing.T) {
	ctx := context.Background()
	b := NewBase(r2.Point{X: 1, Y: 1})

	test.That(t, b.MoveForward(ctx, 10), test.ShouldBeNil)
	test.That(t, b.TurnLeft(ctx, 90), test.ShouldBeNil)
	test.That(t, b.MoveForward(ctx, 5), test.ShouldBeNil)
	test.That(t, b.Position.X, test.ShouldAlmostEqual, 11)
	test.That(t, b.Position.Y, test.ShouldAlmostEqual, 6)

	test.That(t, b.TurnRight(ctx, 180), test.ShouldBeNil)
	test.That(t, b.Heading, test.ShouldEqual, -90.0)
	test.That(t, b.NormalizedHeading(), test.ShouldEqual, 270.0)
	test.That(t, b.MoveForward(ctx, 5), test.ShouldBeNil)
	test.That(t, b.Position.Y, test.ShouldAlmostEqual, 1)

	test.That(t, b.Commands, test.ShouldResemble, []svgdrive.Command{
		{Kind: svgdrive.MoveForward, Value: 10},
		{Kind: svgdrive.TurnLeft, Value: 90},
		{Kind: svgdrive.MoveForward, Value: 5},
		{Kind: svgdrive.TurnRight, Value: 180},
		{Kind: svgdrive.MoveForward, Value: 5},
	})
}

func TestBaseSpin(t *testing.T) {
	ctx := context.Background()
	b := NewBase(r2.Point{})

	test.That(t, b.Spin(ctx, 45, 10, nil), test.ShouldBeNil)
	test.That(t, b.Spin(ctx, -15, 10, nil), test.ShouldBeNil)
	test.That(t, b.Heading, test.ShouldEqual, 30.0)
	test.That(t, b.Commands[1], test.ShouldResemble, svgdrive.Command{Kind: svgdrive.TurnRight, Value: 15})

	test.That(t, b.MoveStraight(ctx, 20, 100, nil), test.ShouldBeNil)
	test.That(t, b.Position.Norm(), test.ShouldAlmostEqual, 20)
	test.That(t, b.MoveStraight(ctx, -1, 100, nil), test.ShouldNotBeNil)
}

func TestBaseFailAt(t *testing.T) {
	ctx := context.Background()
	b := NewBase(r2.Point{})
	b.FailAt = 2

	test.That(t, b.MoveForward(ctx, 1), test.ShouldBeNil)
	err := b.TurnLeft(ctx, 10)
	test.That(t, errors.Is(err, ErrInjected), test.ShouldBeTrue)
	test.That(t, b.Heading, test.ShouldEqual, 0.0)
	test.That(t, b.Commands, test.ShouldHaveLength, 1)
}
