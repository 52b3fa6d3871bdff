package growth_test

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/growthlab/internal/growth"
)

var _ = Describe("Decode", func() {
	It("resolves a complete set", func() {
		p, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": 0.2, "d": 0.04, "alpha": 1.0 / 3, "g": 0.02})
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(baseline))
	})

	It("accepts delta for depreciation", func() {
		p, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": 0.2, "delta": 0.04, "alpha": 1.0 / 3, "g": 0.02})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.D).To(Equal(0.04))
	})

	It("accepts matching d and delta", func() {
		p, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": 0.2, "d": 0.04, "delta": 0.04, "alpha": 0.3, "g": 0.02})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.D).To(Equal(0.04))
	})

	It("rejects conflicting d and delta", func() {
		_, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": 0.2, "d": 0.04, "delta": 0.05, "alpha": 0.3, "g": 0.02})
		Expect(err).To(MatchError(growth.ErrAliasConflict))
	})

	It("never defaults depreciation to zero", func() {
		_, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": 0.2, "alpha": 0.3, "g": 0.02})
		Expect(err).To(MatchError(growth.ErrMissingParameter))
		Expect(err.Error()).To(ContainSubstring(": d"))
	})

	It("names every missing key", func() {
		_, err := growth.Decode(growth.ParameterSet{"s": 0.2})
		Expect(err).To(MatchError(growth.ErrMissingParameter))
		Expect(err.Error()).To(ContainSubstring("n, d, alpha, g"))
	})

	It("decodes numeric strings and integers", func() {
		p, err := growth.Decode(growth.ParameterSet{"n": "0.01", "s": "0.2", "d": 0, "alpha": 1, "g": "0"})
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(growth.Params{N: 0.01, S: 0.2, D: 0, Alpha: 1, G: 0}))
	})

	It("rejects values that are not numbers", func() {
		_, err := growth.Decode(growth.ParameterSet{"n": "fast", "s": 0.2, "d": 0.04, "alpha": 0.3, "g": 0.02})
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("treats empty values as missing",
		func(empty any) {
			_, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": 0.2, "d": empty, "alpha": 0.3, "g": 0.02})
			Expect(err).To(MatchError(growth.ErrMissingParameter))
		},
		Entry("nil", nil),
		Entry("empty string", ""),
		Entry("blank string", "  "),
	)

	It("rejects an empty delta alias", func() {
		_, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": 0.2, "delta": "", "alpha": 0.3, "g": 0.02})
		Expect(err).To(MatchError(growth.ErrMissingParameter))
	})

	It("rejects booleans", func() {
		_, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": 0.2, "d": false, "alpha": 0.3, "g": 0.02})
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(growth.ErrMissingParameter))
	})

	DescribeTable("rejects non-finite values",
		func(v any) {
			_, err := growth.Decode(growth.ParameterSet{"n": 0.01, "s": v, "d": 0.04, "alpha": 1, "g": 0.02})
			Expect(err).To(MatchError(growth.ErrInvalidDomain))
		},
		Entry("NaN string", "NaN"),
		Entry("Inf string", "+Inf"),
		Entry("NaN float", math.NaN()),
		Entry("infinite float", math.Inf(-1)),
		Entry("NaN json number", json.Number("NaN")),
	)

	It("matches keys exactly", func() {
		_, err := growth.Decode(growth.ParameterSet{"N": 0.01, "s": 0.2, "Delta": 0.04, "alpha": 0.3, "g": 0.02})
		Expect(err).To(MatchError(growth.ErrMissingParameter))
		Expect(err.Error()).To(ContainSubstring("n, d"))
	})

	It("round-trips through Set", func() {
		p, err := growth.Decode(baseline.Set())
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(baseline))
	})

	It("builds a model from a set", func() {
		m, err := growth.NewFromSet(baseline.Set())
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Params()).To(Equal(baseline))

		_, err = growth.NewFromSet(growth.ParameterSet{})
		Expect(err).To(MatchError(growth.ErrMissingParameter))
	})
})

var _ = Describe("Params", func() {
	It("reads and replaces by name", func() {
		v, err := baseline.Get("delta")
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(0.04))

		p, err := baseline.With("s", 0.3)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.S).To(Equal(0.3))
		Expect(baseline.S).To(Equal(0.2))

		_, err = baseline.With("rho", 0.1)
		Expect(err).To(HaveOccurred())
		_, err = baseline.Get("theta")
		Expect(err).To(HaveOccurred())
	})

	It("sums effective depreciation", func() {
		Expect(baseline.Dilution()).To(BeNumerically("~", 0.07, 1e-15))
	})
})
