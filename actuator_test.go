package svgdrive_test

import (
	"context"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/vasalvit/svgdrive"
	"github.com/vasalvit/svgdrive/fake"
)

func TestBaseActuator(t *testing.T) {
	ctx := context.Background()
	b := fake.NewBase(r2.Point{})
	act := svgdrive.NewBaseActuator(b)
	act.MmPerUnit = 10

	test.That(t, act.TurnLeft(ctx, 30), test.ShouldBeNil)
	test.That(t, act.TurnRight(ctx, 45), test.ShouldBeNil)
	test.That(t, act.MoveForward(ctx, 1.26), test.ShouldBeNil)
	// rounds to no motion at all
	test.That(t, act.MoveForward(ctx, 0.04), test.ShouldBeNil)

	test.That(t, b.Commands, test.ShouldResemble, []svgdrive.Command{
		{Kind: svgdrive.TurnLeft, Value: 30},
		{Kind: svgdrive.TurnRight, Value: 45},
		{Kind: svgdrive.MoveForward, Value: 13},
	})
	test.That(t, b.Heading, test.ShouldEqual, -15.0)
}

func TestBaseActuatorError(t *testing.T) {
	ctx := context.Background()
	b := fake.NewBase(r2.Point{})
	b.FailAt = 1

	err := svgdrive.NewBaseActuator(b).TurnRight(ctx, 10)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "turn right")
}

func TestDo(t *testing.T) {
	ctx := context.Background()
	b := fake.NewBase(r2.Point{})

	for _, cmd := range []svgdrive.Command{
		{Kind: svgdrive.TurnLeft, Value: 90},
		{Kind: svgdrive.MoveForward, Value: 2},
		{Kind: svgdrive.TurnRight, Value: 90},
	} {
		test.That(t, svgdrive.Do(ctx, b, cmd), test.ShouldBeNil)
	}
	test.That(t, b.Position.X, test.ShouldAlmostEqual, 0)
	test.That(t, b.Position.Y, test.ShouldAlmostEqual, 2)
	test.That(t, b.Heading, test.ShouldEqual, 0.0)

	test.That(t, svgdrive.Do(ctx, b, svgdrive.Command{Kind: svgdrive.CommandKind(9)}), test.ShouldNotBeNil)
}
