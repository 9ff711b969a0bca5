package facility_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ecoatom/internal/facility"
)

func defaultVacuumConfig() facility.VacuumConfig {
	return facility.VacuumConfig{
		InitialPressurePa: 1000,
		BasePressurePa:    1e-6,
		PumpSpeed:         0.5,
		OutgassingRate:    0,
	}
}

var _ = Describe("VacuumChamber", func() {
	Describe("construction", func() {
		It("accepts a valid configuration", func() {
			vc, err := facility.NewVacuumChamber(defaultVacuumConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(vc.Pressure()).To(Equal(1000.0))
		})

		DescribeTable("rejects out-of-domain parameters",
			func(mutate func(*facility.VacuumConfig)) {
				cfg := defaultVacuumConfig()
				mutate(&cfg)
				_, err := facility.NewVacuumChamber(cfg)
				Expect(err).To(MatchError(facility.ErrInvalidParameter))
			},
			Entry("zero initial pressure", func(c *facility.VacuumConfig) { c.InitialPressurePa = 0 }),
			Entry("negative initial pressure", func(c *facility.VacuumConfig) { c.InitialPressurePa = -1 }),
			Entry("zero base pressure", func(c *facility.VacuumConfig) { c.BasePressurePa = 0 }),
			Entry("base pressure above initial", func(c *facility.VacuumConfig) { c.BasePressurePa = 2000 }),
			Entry("negative pump speed", func(c *facility.VacuumConfig) { c.PumpSpeed = -0.1 }),
			Entry("negative outgassing rate", func(c *facility.VacuumConfig) { c.OutgassingRate = -0.01 }),
		)
	})

	Describe("pump-down", func() {
		It("strictly decreases toward base pressure with outgassing off", func() {
			vc, err := facility.NewVacuumChamber(defaultVacuumConfig())
			Expect(err).NotTo(HaveOccurred())

			prev := vc.Pressure()
			for i := 0; i < 10; i++ {
				vc.Advance(1.0)
				p := vc.Pressure()
				Expect(p).To(BeNumerically("<", prev))
				Expect(p).To(BeNumerically(">", vc.BasePressure()))
				prev = p
			}
		})

		It("converges to the base pressure as a fixed point", func() {
			vc, _ := facility.NewVacuumChamber(defaultVacuumConfig())
			for i := 0; i < 200; i++ {
				vc.Advance(1.0)
			}
			Expect(vc.Pressure()).To(BeNumerically("~", vc.BasePressure(), 1e-6))

			// Once at base pressure, advancing is idempotent.
			at := vc.Pressure()
			vc.Advance(1.0)
			Expect(vc.Pressure()).To(Equal(at))
		})

		It("never falls below base pressure regardless of tick size", func() {
			for _, dt := range []float64{0.01, 0.5, 1.0, 3.0, 10.0} {
				vc, err := facility.NewVacuumChamber(defaultVacuumConfig())
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 1000; i++ {
					vc.Advance(dt)
					Expect(vc.Pressure()).To(BeNumerically(">=", vc.BasePressure()),
						"dt=%g step=%d", dt, i)
				}
			}
		})
	})

	Describe("outgassing", func() {
		It("pushes pressure up when pumping is off", func() {
			cfg := defaultVacuumConfig()
			cfg.PumpSpeed = 0
			cfg.OutgassingRate = 0.02
			vc, err := facility.NewVacuumChamber(cfg)
			Expect(err).NotTo(HaveOccurred())

			before := vc.Pressure()
			vc.Advance(1.0)
			Expect(vc.Pressure()).To(BeNumerically(">", before))
		})

		It("adds a larger counter-term at higher pressure", func() {
			cfg := defaultVacuumConfig()
			cfg.PumpSpeed = 0
			cfg.OutgassingRate = 0.02

			high, _ := facility.NewVacuumChamber(cfg)

			cfg.InitialPressurePa = 10
			low, _ := facility.NewVacuumChamber(cfg)

			highBefore, lowBefore := high.Pressure(), low.Pressure()
			high.Advance(1.0)
			low.Advance(1.0)

			Expect(high.Pressure() - highBefore).To(BeNumerically(">", low.Pressure()-lowBefore))
		})
	})

	Describe("edge cases", func() {
		It("treats zero and negative elapsed time as a no-op", func() {
			vc, _ := facility.NewVacuumChamber(defaultVacuumConfig())
			vc.Advance(1.0)
			before := vc.Pressure()

			vc.Advance(0)
			vc.Advance(-2.0)

			Expect(vc.Pressure()).To(Equal(before))
		})

		It("keeps pressure positive", func() {
			cfg := defaultVacuumConfig()
			cfg.PumpSpeed = 10 // overshooting pump with a coarse tick
			vc, _ := facility.NewVacuumChamber(cfg)
			for i := 0; i < 50; i++ {
				vc.Advance(5.0)
				Expect(vc.Pressure()).To(BeNumerically(">", 0))
			}
		})
	})
})
