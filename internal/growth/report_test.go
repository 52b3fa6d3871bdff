package growth_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/growthlab/internal/growth"
)

var highSavings = growth.Params{N: 0.01, S: 0.33, D: 0.04, Alpha: 1.0 / 3, G: 0.01}

var _ = Describe("ReplaceParameters", func() {
	It("reports the old and new steady states", func() {
		m := growth.New(convergence)

		report, err := m.ReplaceParameters(highSavings)
		Expect(err).NotTo(HaveOccurred())

		oldK, _ := growth.New(convergence).SteadyStateCapital()
		newK, _ := growth.New(highSavings).SteadyStateCapital()

		r := report.Map()
		Expect(r[growth.ReportOldK]).To(Equal(oldK))
		Expect(r[growth.ReportNewK]).To(Equal(newK))
		Expect(r[growth.ReportKChange]).To(BeNumerically(">", 0))
		Expect(r[growth.ReportKChange]).To(BeNumerically("~", (newK-oldK)/oldK, 1e-12))
		Expect(r[growth.ReportKRatio]).To(BeNumerically("~", newK/oldK, 1e-12))
		Expect(r).To(HaveLen(10))

		Expect(report.OldParams).To(Equal(convergence))
		Expect(report.NewParams).To(Equal(highSavings))

		k, err := m.SteadyStateCapital()
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(r[growth.ReportNewK]))
		Expect(m.Params()).To(Equal(highSavings))
	})

	It("computes output and consumption ratios", func() {
		m := growth.New(convergence)
		report, err := m.ReplaceParameters(highSavings)
		Expect(err).NotTo(HaveOccurred())

		Expect(report.OutputRatio).To(Equal(report.New.Output / report.Old.Output))
		Expect(report.ConsumptionRatio).To(Equal(report.New.Consumption / report.Old.Consumption))
	})

	It("keeps the old parameters when the new ones fail", func() {
		m := growth.New(convergence)
		_, err := m.ReplaceParameters(growth.Params{N: 0, S: 0.2, D: 0, Alpha: 0.5, G: 0})
		Expect(err).To(MatchError(growth.ErrDegenerateDenominator))
		Expect(m.Params()).To(Equal(convergence))
	})

	It("refuses to divide by a zero old steady state", func() {
		p := convergence
		p.S = 0
		m := growth.New(p)
		_, err := m.ReplaceParameters(highSavings)
		Expect(err).To(MatchError(growth.ErrDegenerateDenominator))
		Expect(m.Params()).To(Equal(p))
	})

	It("never exposes a torn parameter set", func() {
		m := growth.New(convergence)
		var wg sync.WaitGroup

		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer GinkgoRecover()
				for j := 0; j < 200; j++ {
					next := highSavings
					if (i+j)%2 == 0 {
						next = convergence
					}
					_, err := m.ReplaceParameters(next)
					Expect(err).NotTo(HaveOccurred())
				}
			}(i)
		}
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				for j := 0; j < 200; j++ {
					Expect(m.Params()).To(Or(Equal(convergence), Equal(highSavings)))
				}
			}()
		}
		wg.Wait()
	})
})
