package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/metrics"
)

var _ = Describe("Latency", func() {
	var lat *metrics.Latency

	BeforeEach(func() {
		lat = metrics.NewLatency()
	})

	It("starts empty", func() {
		Expect(lat.Samples()).To(BeZero())
		Expect(lat.Instant()).To(BeZero())
		Expect(lat.Average()).To(BeZero())
	})

	It("tracks the running mean of every sample", func() {
		lat.Record(10 * time.Microsecond)
		Expect(lat.Average()).To(Equal(10 * time.Microsecond))

		lat.Record(20 * time.Microsecond)
		Expect(lat.Average()).To(Equal(15 * time.Microsecond))

		lat.Record(30 * time.Microsecond)
		Expect(lat.Average()).To(Equal(20 * time.Microsecond))
	})

	It("reports the most recent sample as instant", func() {
		lat.Record(5 * time.Millisecond)
		lat.Record(2 * time.Millisecond)
		Expect(lat.Instant()).To(Equal(2 * time.Millisecond))
	})

	It("never decays the mean", func() {
		for i := 0; i < 10000; i++ {
			lat.Record(time.Microsecond)
		}
		lat.Record(10001 * time.Microsecond)

		// (10000*1 + 10001) / 10001 = 2
		Expect(lat.Samples()).To(Equal(int64(10001)))
		Expect(lat.Average()).To(Equal(2 * time.Microsecond))
	})

	It("tracks the worst sample", func() {
		lat.Record(3 * time.Microsecond)
		lat.Record(9 * time.Microsecond)
		lat.Record(4 * time.Microsecond)
		Expect(lat.Max()).To(Equal(9 * time.Microsecond))
	})

	It("copies statistics into a snapshot", func() {
		lat.Record(10 * time.Microsecond)
		lat.Record(30 * time.Microsecond)

		snap := lat.Snapshot()
		Expect(snap.Samples).To(Equal(int64(2)))
		Expect(snap.Last).To(Equal(30 * time.Microsecond))
		Expect(snap.Average).To(Equal(20 * time.Microsecond))
		Expect(snap.Max).To(Equal(30 * time.Microsecond))
	})

	It("derives steps per second from the average", func() {
		lat.Record(time.Millisecond)
		Expect(lat.Snapshot().StepsPerSecond()).To(BeNumerically("~", 1000.0, 1e-9))
		Expect(metrics.Snapshot{}.StepsPerSecond()).To(BeZero())
	})

	It("clears on reset", func() {
		lat.Record(time.Millisecond)
		lat.Reset()
		Expect(lat.Samples()).To(BeZero())
		Expect(lat.Max()).To(BeZero())
	})
})
