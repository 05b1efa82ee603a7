package navigation_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/antnav/internal/navigation"
)

var _ = Describe("Controller", func() {
	var (
		agent *navigation.PathIntegrator
		ctrl  *navigation.Controller
	)

	BeforeEach(func() {
		var err error
		agent, err = navigation.NewPathIntegrator(navigation.Vec2{}, 0, navigation.WithSeed(42))
		Expect(err).NotTo(HaveOccurred())
		agent.Sensor().SetSunPosition(90)
		ctrl = navigation.NewController(agent)
	})

	It("starts in init with an empty odometer", func() {
		Expect(ctrl.Phase()).To(Equal(navigation.PhaseInit))
		Expect(agent.Odometer()).To(BeZero())
		Expect(agent.PathEfficiency()).To(Equal(1.0))
	})

	Context("walking east ten meters", func() {
		BeforeEach(func() {
			agent.Turn(0)
			agent.MoveForward(10)
		})

		It("accumulates the home vector", func() {
			Expect(agent.Position()).To(Equal(navigation.Vec2{X: 10, Y: 0}))
			Expect(agent.HomeVector()).To(Equal(navigation.Vec2{X: -10, Y: 0}))
			Expect(agent.HomeDistance()).To(Equal(10.0))
		})

		It("reports a perfectly efficient path", func() {
			Expect(agent.PathEfficiency()).To(BeNumerically("~", 1.0, 1e-12))
		})
	})

	Context("after foraging north for five meters", func() {
		BeforeEach(func() {
			Expect(ctrl.ExecuteForagingRun([]navigation.Move{{TurnDeg: 90, Distance: 5}})).To(Succeed())
		})

		It("is in the foraging phase at (0, 5)", func() {
			Expect(ctrl.Phase()).To(Equal(navigation.PhaseForaging))
			Expect(agent.Position().X).To(BeNumerically("~", 0, 1e-9))
			Expect(agent.Position().Y).To(BeNumerically("~", 5, 1e-9))
		})

		It("returns home in one step of five meters", func() {
			steps, err := ctrl.ExecuteReturnHome(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal(1))
			Expect(agent.Position().Norm()).To(BeNumerically("<", 1e-9))
			Expect(ctrl.Phase()).To(Equal(navigation.PhaseArrived))
		})

		It("rejects a zero step size without moving", func() {
			before := agent.Trajectory().Len()
			_, err := ctrl.ExecuteReturnHome(0)
			Expect(err).To(MatchError(navigation.ErrInvalidConfiguration))
			Expect(agent.Trajectory().Len()).To(Equal(before))
			Expect(ctrl.Phase()).To(Equal(navigation.PhaseForaging))
		})
	})

	Context("with a noiseless compass", func() {
		It("always reads the sun at π/2", func() {
			for i := 0; i < 10; i++ {
				Expect(agent.Sensor().Sample().Angle).To(BeNumerically("~", math.Pi/2, 1e-12))
			}
		})
	})

	Context("with a noisy compass and a sun-steered run", func() {
		It("still gets home because homing uses the home vector", func() {
			noisy, err := navigation.NewPathIntegrator(navigation.Vec2{X: 5, Y: 5}, 0.2, navigation.WithSeed(9))
			Expect(err).NotTo(HaveOccurred())
			noisy.Sensor().Calibrate(90)
			c := navigation.NewController(noisy)

			Expect(c.ExecuteCompassRun([]navigation.Move{{TurnDeg: -45, Distance: 20}, {TurnDeg: 30, Distance: 15}})).To(Succeed())
			_, err = c.ExecuteReturnHome(1)
			Expect(err).NotTo(HaveOccurred())

			Expect(noisy.Position().Sub(noisy.Home()).Norm()).To(BeNumerically("<=", navigation.ArrivalThreshold+1e-9))
			Expect(c.Summary().Drift).To(BeNumerically("<", 1e-9))
		})
	})

	It("rejects a negative noise level", func() {
		_, err := navigation.NewPathIntegrator(navigation.Vec2{}, -0.1)
		Expect(err).To(MatchError(navigation.ErrInvalidConfiguration))
	})
})
