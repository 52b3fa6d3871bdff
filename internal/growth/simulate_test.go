package growth_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/growthlab/internal/growth"
)

type recorder struct {
	steps []int
	ks    []float64
}

func (r *recorder) Observe(step int, k float64) {
	r.steps = append(r.steps, step)
	r.ks = append(r.ks, k)
}

var convergence = growth.Params{N: 0.01, S: 0.24, D: 0.04, Alpha: 1.0 / 3, G: 0.01}

var _ = Describe("Simulate", func() {
	var m *growth.Model

	BeforeEach(func() {
		m = growth.New(convergence)
	})

	It("rises towards the steady state from below", func() {
		path, err := m.Simulate(4, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HaveLen(10))
		Expect(path[0]).To(Equal(4.0))
		Expect(path[1]).To(BeNumerically("~", 4.179184, 1e-6))
		Expect(path[9]).To(BeNumerically("~", 5.487778, 1e-6))

		for t := 1; t < len(path); t++ {
			Expect(path[t]).To(BeNumerically(">", path[t-1]))
		}
		for t := 2; t < len(path); t++ {
			Expect(path[t] - path[t-1]).To(BeNumerically("<", path[t-1]-path[t-2]))
		}
	})

	It("is deterministic", func() {
		a, err := m.Simulate(4, 50)
		Expect(err).NotTo(HaveOccurred())
		b, err := m.Simulate(4, 50)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	DescribeTable("returns exactly steps elements",
		func(steps int) {
			path, err := m.Simulate(2.5, steps)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(HaveLen(steps))
			Expect(path.IsValid()).To(BeTrue())
		},
		Entry("one", 1),
		Entry("two", 2),
		Entry("hundred", 100),
	)

	It("returns the initial capital alone for one step", func() {
		path, err := m.Simulate(7, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(growth.Path{7}))
	})

	It("rejects fewer than one step", func() {
		_, err := m.Simulate(4, 0)
		Expect(err).To(MatchError(growth.ErrInvalidStepCount))

		_, err = m.SimulateDeltas(4, -3)
		Expect(err).To(MatchError(growth.ErrInvalidStepCount))
	})

	It("fails on negative capital instead of clamping", func() {
		_, err := m.Simulate(-1, 5)
		Expect(err).To(MatchError(growth.ErrInvalidDomain))

		var cerr *growth.ComputationError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Step).To(Equal(1))
		Expect(cerr.Value).To(Equal(-1.0))
	})

	It("rejects a population growth rate of -1", func() {
		p := convergence
		p.N = -1
		_, err := growth.New(p).Simulate(4, 3)
		Expect(err).To(MatchError(growth.ErrDegenerateDenominator))
	})

	It("feeds every element to observers", func() {
		rec := &recorder{}
		path, err := m.Simulate(4, 5, rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.steps).To(Equal([]int{0, 1, 2, 3, 4}))
		Expect(rec.ks).To(Equal([]float64(path)))
	})
})

var _ = Describe("SimulateDeltas", func() {
	m := growth.New(convergence)

	It("matches the plain path", func() {
		path, err := m.Simulate(4, 20)
		Expect(err).NotTo(HaveOccurred())
		d, err := m.SimulateDeltas(4, 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Path).To(Equal(path))
	})

	It("computes first differences and growth rates", func() {
		d, err := m.SimulateDeltas(4, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Change).To(HaveLen(10))
		Expect(d.Growth).To(HaveLen(10))

		Expect(d.Change[0]).To(Equal(0.0))
		Expect(d.Growth[0]).To(Equal(0.0))
		for t := 1; t < 10; t++ {
			Expect(d.Change[t]).To(Equal(d.Path[t] - d.Path[t-1]))
			Expect(d.Growth[t]).To(Equal(d.Change[t] / d.Path[t]))
		}
	})

	It("fails when capital reaches zero", func() {
		p := convergence
		p.S = 0
		p.D = 1
		_, err := growth.New(p).SimulateDeltas(4, 3)
		Expect(err).To(MatchError(growth.ErrDegenerateDenominator))
	})
})

var _ = Describe("Path", func() {
	It("clones independently", func() {
		p := growth.Path{1, 2, 3}
		c := p.Clone()
		c[0] = 99
		Expect(p[0]).To(Equal(1.0))
		Expect(p.Last()).To(Equal(3.0))
		Expect(growth.Path{}.Last()).To(Equal(0.0))
	})
})
