package facility_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ecoatom/internal/facility"
)

func defaultCoreConfig() facility.CentrifugalConfig {
	return facility.CentrifugalConfig{
		RadiusM:                 0.5,
		InitialRPM:              0,
		MaxRPM:                  20000,
		AccelerationRPMPerS:     200,
		BeamMassNumber:          56,
		InstabilityThresholdRPM: 10000,
	}
}

var _ = Describe("CentrifugalCore", func() {
	Describe("construction", func() {
		It("accepts a valid configuration", func() {
			core, err := facility.NewCentrifugalCore(defaultCoreConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(core.RPM()).To(Equal(0.0))
		})

		DescribeTable("rejects out-of-domain parameters",
			func(mutate func(*facility.CentrifugalConfig)) {
				cfg := defaultCoreConfig()
				mutate(&cfg)
				_, err := facility.NewCentrifugalCore(cfg)
				Expect(err).To(MatchError(facility.ErrInvalidParameter))
			},
			Entry("zero radius", func(c *facility.CentrifugalConfig) { c.RadiusM = 0 }),
			Entry("negative radius", func(c *facility.CentrifugalConfig) { c.RadiusM = -1 }),
			Entry("negative initial rpm", func(c *facility.CentrifugalConfig) { c.InitialRPM = -10 }),
			Entry("zero mass number", func(c *facility.CentrifugalConfig) { c.BeamMassNumber = 0 }),
			Entry("negative mass number", func(c *facility.CentrifugalConfig) { c.BeamMassNumber = -4 }),
			Entry("zero threshold", func(c *facility.CentrifugalConfig) { c.InstabilityThresholdRPM = 0 }),
			Entry("max rpm below initial rpm", func(c *facility.CentrifugalConfig) {
				c.InitialRPM = 500
				c.MaxRPM = 100
			}),
			Entry("negative ramp rate", func(c *facility.CentrifugalConfig) { c.AccelerationRPMPerS = -1 }),
		)

		It("reports the offending parameter", func() {
			cfg := defaultCoreConfig()
			cfg.RadiusM = -2
			_, err := facility.NewCentrifugalCore(cfg)

			var perr *facility.ParameterError
			Expect(errors.As(err, &perr)).To(BeTrue())
			Expect(perr.Name).To(Equal("radius_m"))
		})
	})

	Describe("ramp policy", func() {
		It("ramps RPM linearly and saturates at max RPM", func() {
			cfg := defaultCoreConfig()
			cfg.MaxRPM = 1000
			cfg.AccelerationRPMPerS = 300
			core, err := facility.NewCentrifugalCore(cfg)
			Expect(err).NotTo(HaveOccurred())

			core.Advance(1.0)
			Expect(core.RPM()).To(BeNumerically("~", 300, 1e-9))
			core.Advance(1.0)
			Expect(core.RPM()).To(BeNumerically("~", 600, 1e-9))
			core.Advance(10.0)
			Expect(core.RPM()).To(Equal(1000.0))
			core.Advance(10.0)
			Expect(core.RPM()).To(Equal(1000.0))
		})

		It("never decreases RPM", func() {
			core, _ := facility.NewCentrifugalCore(defaultCoreConfig())
			prev := core.RPM()
			for i := 0; i < 500; i++ {
				core.Advance(0.1)
				Expect(core.RPM()).To(BeNumerically(">=", prev))
				prev = core.RPM()
			}
		})

		It("treats zero and negative elapsed time as a no-op", func() {
			core, _ := facility.NewCentrifugalCore(defaultCoreConfig())
			core.Advance(5.0)
			before := core.RPM()
			kin := core.Kinematics()

			core.Advance(0)
			core.Advance(-1.5)

			Expect(core.RPM()).To(Equal(before))
			Expect(core.Kinematics()).To(Equal(kin))
		})
	})

	Describe("kinematics", func() {
		It("derives angular velocity, tangential velocity and acceleration exactly", func() {
			cfg := defaultCoreConfig()
			cfg.RadiusM = 2.0
			cfg.InitialRPM = 1200
			core, err := facility.NewCentrifugalCore(cfg)
			Expect(err).NotTo(HaveOccurred())

			kin := core.Kinematics()
			omega := 1200.0 / 60.0 * 2.0 * math.Pi
			Expect(kin.AngularVelocity).To(Equal(omega))
			Expect(kin.TangentialVelocity).To(Equal(omega * 2.0))
			Expect(kin.CentrifugalAcceleration).To(Equal(omega * omega * 2.0))
		})

		It("matches the worked example at radius 0.5 m and 6000 RPM", func() {
			cfg := defaultCoreConfig()
			cfg.RadiusM = 0.5
			cfg.InitialRPM = 0
			cfg.MaxRPM = 6000
			cfg.AccelerationRPMPerS = 600
			core, err := facility.NewCentrifugalCore(cfg)
			Expect(err).NotTo(HaveOccurred())

			// Ramp well past saturation.
			for i := 0; i < 20; i++ {
				core.Advance(1.0)
			}

			kin := core.Kinematics()
			Expect(core.RPM()).To(Equal(6000.0))
			Expect(kin.AngularVelocity).To(BeNumerically("~", 628.32, 0.01))
			Expect(kin.TangentialVelocity).To(BeNumerically("~", 314.16, 0.01))
			Expect(core.Stable()).To(BeTrue())
		})

		It("recomputes derived quantities on every query", func() {
			core, _ := facility.NewCentrifugalCore(defaultCoreConfig())
			before := core.Kinematics()
			core.Advance(10.0)
			after := core.Kinematics()
			Expect(after.AngularVelocity).To(BeNumerically(">", before.AngularVelocity))
		})
	})

	Describe("stability", func() {
		It("flips exactly when RPM crosses above the threshold", func() {
			cfg := defaultCoreConfig()
			cfg.InitialRPM = 9999
			cfg.AccelerationRPMPerS = 1
			core, err := facility.NewCentrifugalCore(cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(core.Stable()).To(BeTrue())

			core.Advance(1.0) // exactly at threshold
			Expect(core.RPM()).To(Equal(10000.0))
			Expect(core.Stable()).To(BeTrue(), "RPM equal to threshold is still stable")

			core.Advance(1.0)
			Expect(core.Stable()).To(BeFalse())
		})
	})

	Describe("kinetic energy estimate", func() {
		It("scales with mass number times tangential velocity squared", func() {
			cfg := defaultCoreConfig()
			cfg.InitialRPM = 6000
			core, _ := facility.NewCentrifugalCore(cfg)

			v := core.Kinematics().TangentialVelocity
			perNucleon := 0.5 * 1.67e-27 * v * v
			Expect(core.KineticEnergyPerNucleon()).To(BeNumerically("~", perNucleon, perNucleon*1e-12))
			Expect(core.KineticEnergyEstimate()).To(BeNumerically("~", 56*perNucleon, 56*perNucleon*1e-12))
		})

		It("is zero at rest", func() {
			core, _ := facility.NewCentrifugalCore(defaultCoreConfig())
			Expect(core.KineticEnergyEstimate()).To(BeZero())
		})
	})
})
