// Package navigation implements path integration (dead reckoning) for a
// single agent moving in a 2D plane.
//
// The package is built from three parts:
//
//   - [SunCompass]: holds the ground-truth sun azimuth and produces noisy readings
//   - [PathIntegrator]: the agent; tracks position, heading, odometry and the home vector
//   - [Controller]: drives one run through foraging and homing and reports a [Summary]
//
// The home vector is a running accumulator. Every movement subtracts its
// displacement from it, so rounding error builds up across moves exactly the
// way it would in the biological mechanism being modeled.
//
// # Example
//
//	pi, _ := navigation.NewPathIntegrator(navigation.Vec2{}, 0.05, navigation.WithSeed(42))
//	pi.Sensor().Calibrate(90)
//	ctrl := navigation.NewController(pi)
//	_ = ctrl.ExecuteForagingRun([]navigation.Move{{TurnDeg: 45, Distance: 15}})
//	steps, _ := ctrl.ExecuteReturnHome(1.0)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Parallel simulations
// must each build their own [PathIntegrator], which owns its own random source.
package navigation
