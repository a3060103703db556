package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/standwave/internal/sim"
	"github.com/san-kum/standwave/internal/wave"
)

var _ = Describe("Session", func() {
	var cfg sim.SessionConfig

	BeforeEach(func() {
		cfg = sim.SessionConfig{
			Params:     wave.Params{Length: 1, Reflection: 1, Velocity: 1, Frequency: 1},
			Resolution: 5,
			Tracing:    true,
		}
	})

	advanceTo := func(s *sim.Session, last int) sim.FrameResult {
		var fr sim.FrameResult
		for i := 0; i <= last; i++ {
			var err error
			fr, err = s.Advance(i)
			Expect(err).NotTo(HaveOccurred())
		}
		return fr
	}

	Context("with tracing enabled", func() {
		It("starts in the tracing state", func() {
			s, err := sim.NewSession(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.State()).To(Equal(sim.Tracing))
			Expect(s.TraceCount()).To(BeZero())
		})

		It("retains one snapshot per frame inside the first period", func() {
			s, _ := sim.NewSession(cfg)
			fr := advanceTo(s, 49)
			Expect(s.TraceCount()).To(Equal(50))
			Expect(fr.Traces).To(HaveLen(49))
			Expect(fr.State).To(Equal(sim.Tracing))
		})

		It("freezes for good once t reaches the period", func() {
			s, _ := sim.NewSession(cfg)
			advanceTo(s, 100)
			Expect(s.State()).To(Equal(sim.Frozen))
			Expect(s.TraceCount()).To(Equal(100))

			fr, err := s.Advance(5000)
			Expect(err).NotTo(HaveOccurred())
			Expect(fr.State).To(Equal(sim.Frozen))
			Expect(fr.Traces).To(HaveLen(100))
		})

		It("freezes on a frame that jumps past the period", func() {
			s, _ := sim.NewSession(cfg)
			_, err := s.Advance(0)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Advance(250)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.TraceCount()).To(Equal(1))
			Expect(s.State()).To(Equal(sim.Frozen))
		})

		It("keeps snapshots in chronological order", func() {
			s, _ := sim.NewSession(cfg)
			frames := make([]sim.FrameResult, 0, 10)
			for i := 0; i < 10; i++ {
				fr, err := s.Advance(i)
				Expect(err).NotTo(HaveOccurred())
				frames = append(frames, fr)
			}
			for i, snap := range s.Traces() {
				Expect(snap).To(Equal(frames[i].Frame.Combined))
			}
		})

		It("rejects frame indices that go backwards", func() {
			s, _ := sim.NewSession(cfg)
			advanceTo(s, 20)
			_, err := s.Advance(19)
			Expect(err).To(MatchError(sim.ErrNonMonotonicFrame))
		})
	})

	Context("with tracing disabled", func() {
		BeforeEach(func() {
			cfg.Tracing = false
		})

		It("is frozen from the start and never traces", func() {
			s, err := sim.NewSession(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.State()).To(Equal(sim.Frozen))

			fr := advanceTo(s, 150)
			Expect(fr.Traces).To(BeEmpty())
			Expect(s.TraceCount()).To(BeZero())
		})
	})

	Context("with a static field", func() {
		BeforeEach(func() {
			cfg.Params.Frequency = 0
		})

		It("keeps tracing without a cap", func() {
			s, _ := sim.NewSession(cfg)
			advanceTo(s, 299)
			Expect(s.State()).To(Equal(sim.Tracing))
			Expect(s.TraceCount()).To(Equal(300))
		})

		It("stops at the configured cap", func() {
			cfg.MaxTraces = 10
			s, _ := sim.NewSession(cfg)
			advanceTo(s, 299)
			Expect(s.State()).To(Equal(sim.Frozen))
			Expect(s.TraceCount()).To(Equal(10))
		})
	})

	Context("with invalid construction parameters", func() {
		DescribeTable("fails fast",
			func(mod func(*sim.SessionConfig), want error) {
				mod(&cfg)
				s, err := sim.NewSession(cfg)
				Expect(err).To(MatchError(want))
				Expect(s).To(BeNil())
			},
			Entry("non-positive length", func(c *sim.SessionConfig) { c.Params.Length = 0 }, wave.ErrInvalidLength),
			Entry("single point grid", func(c *sim.SessionConfig) { c.Resolution = 1 }, wave.ErrInvalidResolution),
			Entry("zero velocity", func(c *sim.SessionConfig) { c.Params.Velocity = 0 }, wave.ErrZeroVelocity),
			Entry("negative dt", func(c *sim.SessionConfig) { c.Dt = -1 }, sim.ErrInvalidDt),
		)
	})
})
