package growth_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/growthlab/internal/growth"
)

var baseline = growth.Params{N: 0.01, S: 0.2, D: 0.04, Alpha: 1.0 / 3, G: 0.02}

var _ = Describe("Model", func() {
	Describe("steady state", func() {
		It("matches the Cobb-Douglas closed form", func() {
			m := growth.New(baseline)

			k, err := m.SteadyStateCapital()
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(BeNumerically("~", 4.829453, 1e-6))

			y, err := m.SteadyStateOutput()
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(BeNumerically("~", 1.690309, 1e-6))

			c, err := m.SteadyStateConsumption()
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(BeNumerically("~", 1.352247, 1e-6))
		})

		DescribeTable("output and consumption follow from capital",
			func(p growth.Params) {
				m := growth.New(p)
				k, err := m.SteadyStateCapital()
				Expect(err).NotTo(HaveOccurred())
				y, err := m.SteadyStateOutput()
				Expect(err).NotTo(HaveOccurred())
				c, err := m.SteadyStateConsumption()
				Expect(err).NotTo(HaveOccurred())

				Expect(y).To(Equal(math.Pow(k, p.Alpha)))
				Expect(c).To(Equal((1 - p.S) * y))
			},
			Entry("baseline", baseline),
			Entry("high savings", growth.Params{N: 0.01, S: 0.33, D: 0.04, Alpha: 1.0 / 3, G: 0.01}),
			Entry("labour heavy", growth.Params{N: 0.02, S: 0.1, D: 0.05, Alpha: 0.25, G: 0.0}),
			Entry("capital heavy", growth.Params{N: 0.0, S: 0.4, D: 0.1, Alpha: 0.7, G: 0.03}),
			Entry("linear", growth.Params{N: 0.01, S: 0.2, D: 0.04, Alpha: 1, G: 0.02}),
		)

		It("takes the linear branch when alpha is 1", func() {
			p := baseline
			p.Alpha = 1
			m := growth.New(p)

			Expect(m.IsCobbDouglas()).To(BeFalse())
			k, err := m.SteadyStateCapital()
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(Equal(p.S / (p.N + p.G + p.D)))
		})

		It("reports Cobb-Douglas form for alpha below 1", func() {
			Expect(growth.New(baseline).IsCobbDouglas()).To(BeTrue())
		})

		It("rejects a zero denominator", func() {
			m := growth.New(growth.Params{N: 0, S: 0.2, D: 0, Alpha: 0.5, G: 0})

			_, err := m.SteadyStateCapital()
			Expect(err).To(MatchError(growth.ErrDegenerateDenominator))

			_, err = m.SteadyStateOutput()
			Expect(err).To(MatchError(growth.ErrDegenerateDenominator))

			_, err = m.SteadyStateConsumption()
			Expect(err).To(MatchError(growth.ErrDegenerateDenominator))
		})

		It("rejects a negative base in the closed form", func() {
			m := growth.New(growth.Params{N: 0.01, S: -0.2, D: 0.04, Alpha: 1.0 / 3, G: 0.02})
			_, err := m.SteadyStateCapital()
			Expect(err).To(MatchError(growth.ErrInvalidDomain))
		})

		DescribeTable("rejects negative effective depreciation",
			func(alpha float64) {
				m := growth.New(growth.Params{N: -0.2, S: 0.2, D: 0.04, Alpha: alpha, G: 0.02})
				_, err := m.SteadyStateCapital()
				Expect(err).To(MatchError(growth.ErrDegenerateDenominator))
			},
			Entry("fractional exponent", 1.0/3),
			Entry("integer exponent", 0.5),
			Entry("linear", 1.0),
		)

		DescribeTable("rejects non-finite parameters on the linear branch",
			func(p growth.Params) {
				m := growth.New(p)
				_, err := m.SteadyStateCapital()
				Expect(err).To(HaveOccurred())

				_, err = m.SteadyState()
				Expect(err).To(HaveOccurred())
			},
			Entry("NaN savings", growth.Params{N: 0.01, S: math.NaN(), D: 0.04, Alpha: 1, G: 0.02}),
			Entry("infinite savings", growth.Params{N: 0.01, S: math.Inf(1), D: 0.04, Alpha: 1, G: 0.02}),
			Entry("NaN depreciation", growth.Params{N: 0.01, S: 0.2, D: math.NaN(), Alpha: 1, G: 0.02}),
		)

		It("keeps the current parameters when the replacement is not finite", func() {
			start := growth.Params{N: 0.01, S: 0.2, D: 0.04, Alpha: 1, G: 0.02}
			m := growth.New(start)

			_, err := m.ReplaceParameters(growth.Params{N: 0.01, S: math.NaN(), D: 0.04, Alpha: 1, G: 0.02})
			Expect(err).To(MatchError(growth.ErrInvalidDomain))
			Expect(m.Params()).To(Equal(start))
		})

		It("rejects a non-finite result when alpha is next to 1", func() {
			p := baseline
			p.Alpha = math.Nextafter(1, 0)
			_, err := growth.New(p).SteadyStateCapital()
			Expect(err).To(MatchError(growth.ErrInvalidDomain))
		})

		It("returns all three quantities together", func() {
			ss, err := growth.New(baseline).SteadyState()
			Expect(err).NotTo(HaveOccurred())
			Expect(ss.Capital).To(BeNumerically("~", 4.829453, 1e-6))
			Expect(ss.Consumption).To(Equal((1 - baseline.S) * ss.Output))
		})
	})

	Describe("production", func() {
		m := growth.New(baseline)

		It("evaluates k^alpha", func() {
			y, err := m.Production(8)
			Expect(err).NotTo(HaveOccurred())
			Expect(y).To(BeNumerically("~", 2, 1e-12))
		})

		It("fails on negative capital", func() {
			_, err := m.Production(-1)
			Expect(err).To(MatchError(growth.ErrInvalidDomain))

			var cerr *growth.ComputationError
			Expect(errors.As(err, &cerr)).To(BeTrue())
			Expect(cerr.Op).To(Equal("production"))
			Expect(cerr.Value).To(Equal(-1.0))
		})

		It("computes the marginal product", func() {
			mpk, err := m.MarginalProduct(8)
			Expect(err).NotTo(HaveOccurred())
			Expect(mpk).To(BeNumerically("~", 1.0/3*math.Pow(8, -2.0/3), 1e-12))
		})

		It("rejects zero capital in the marginal product", func() {
			_, err := m.MarginalProduct(0)
			Expect(err).To(MatchError(growth.ErrDegenerateDenominator))
		})
	})

	Describe("equation of motion", func() {
		m := growth.New(baseline)

		It("is zero at the continuous-time steady state", func() {
			k, err := m.SteadyStateCapital()
			Expect(err).NotTo(HaveOccurred())

			kdot, err := m.EquationOfMotion(k)
			Expect(err).NotTo(HaveOccurred())
			Expect(kdot).To(BeNumerically("~", 0, 1e-12))
		})

		It("is positive below and negative above the steady state", func() {
			k, _ := m.SteadyStateCapital()

			below, err := m.EquationOfMotion(k / 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(below).To(BeNumerically(">", 0))

			above, err := m.EquationOfMotion(k * 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(above).To(BeNumerically("<", 0))
		})

		It("has a negative slope at the steady state", func() {
			k, _ := m.SteadyStateCapital()
			slope, err := m.GrowthRate(k)
			Expect(err).NotTo(HaveOccurred())
			// s*alpha*k^(alpha-1) = alpha*(n+g+d) at k*, so the slope is (alpha-1)(n+g+d).
			Expect(slope).To(BeNumerically("~", (baseline.Alpha-1)*baseline.Dilution(), 1e-12))
		})

		It("propagates domain errors", func() {
			_, err := m.EquationOfMotion(-1)
			Expect(err).To(MatchError(growth.ErrInvalidDomain))

			_, err = m.GrowthRate(0)
			Expect(err).To(MatchError(growth.ErrDegenerateDenominator))
		})
	})

	It("renders its parameters", func() {
		Expect(growth.New(baseline).String()).To(Equal("n=0.01 s=0.2 d=0.04 alpha=0.3333 g=0.02"))
	})
})
