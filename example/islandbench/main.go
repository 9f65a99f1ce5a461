// Command islandbench drops a stack of bodies and a pendulum onto a ground
// plane and logs island activity step by step.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/akmonengine/islet"
	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/collision"
	"github.com/akmonengine/islet/config"
	"github.com/akmonengine/islet/joint"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	configPath := flag.String("config", "", "path to a tuning YAML file (defaults built in if omitted)")
	steps := flag.Int("steps", 180, "number of 1/60s steps to simulate")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	tuning := defaultTuning()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("islandbench: failed to load tuning file", "path", *configPath, "err", err)
			os.Exit(1)
		}
		tuning = loaded
	}

	world := islet.NewWorld(mgl64.Vec3{0, -9.81, 0}, tuning.Params, 1)
	world.Grid = collision.NewSpatialGrid(2.0, 256)

	world.Events.Subscribe(islet.CollisionEnter, func(event islet.Event) {
		e := event.(islet.CollisionEnterEvent)
		slog.Info("collision enter", "bodyA", e.BodyA.Transform.Position, "bodyB", e.BodyB.Transform.Position)
	})
	world.Events.Subscribe(islet.OnSleep, func(event islet.Event) {
		slog.Info("body slept", "position", event.(islet.SleepEvent).Body.Transform.Position)
	})

	ground := actor.NewRigidBodyWithMaterial(
		actor.Transform{Position: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()},
		&actor.Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0},
		actor.BodyTypeStatic,
		tuning.Materials["concrete"],
	)
	world.AddBody(ground)

	for i := 0; i < 4; i++ {
		box := actor.NewRigidBodyWithMaterial(
			actor.Transform{Position: mgl64.Vec3{0, 2 + float64(i)*2.1, 0}, Rotation: mgl64.QuatIdent()},
			&actor.Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
			actor.BodyTypeDynamic,
			tuning.Materials["wood"],
		)
		world.AddBody(box)
	}

	anchor := actor.NewRigidBodyWithMaterial(
		actor.Transform{Position: mgl64.Vec3{4, 6, 0}, Rotation: mgl64.QuatIdent()},
		&actor.Sphere{Radius: 0.1},
		actor.BodyTypeStatic,
		tuning.Materials["steel"],
	)
	bob := actor.NewRigidBodyWithMaterial(
		actor.Transform{Position: mgl64.Vec3{4, 3, 0}, Rotation: mgl64.QuatIdent()},
		&actor.Sphere{Radius: 0.4},
		actor.BodyTypeDynamic,
		tuning.Materials["rubber"],
	)
	world.AddBody(anchor)
	world.AddBody(bob)
	world.AddJoint(joint.NewBall(anchor, bob, mgl64.Vec3{}, mgl64.Vec3{0, 3, 0}))

	const dt = 1.0 / 60.0
	for step := 0; step < *steps; step++ {
		world.Step(dt)
		if step%30 == 0 {
			slog.Debug("islandbench step", "step", step, "bob", bob.Transform.Position)
		}
	}

	slog.Info("islandbench finished", "bodies", len(world.Bodies), "joints", len(world.Joints))
}

func defaultTuning() *config.Tuning {
	tuning, err := config.Parse([]byte("solver:\n  stepRateHz: 60\n"))
	if err != nil {
		panic(err)
	}
	return tuning
}
