package impact_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/okian/footprint/internal/domain/impact"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	modeA impact.Mode = "a"
	modeB impact.Mode = "b"
	modeC impact.Mode = "c"
	modeD impact.Mode = "d"
)

var testModes = []impact.Mode{modeA, modeB, modeC, modeD}

func dist(a, b, c, d float64) impact.Distribution {
	return impact.NewDistribution(testModes, map[impact.Mode]float64{modeA: a, modeB: b, modeC: c, modeD: d})
}

func TestNewDistribution(t *testing.T) {
	Convey("Given shares outside the mode set and negative values", t, func() {
		d := impact.NewDistribution(testModes, map[impact.Mode]float64{
			modeA: 10, modeB: -5, "zzz": 40, modeC: math.NaN(),
		})

		Convey("Then foreign modes are dropped and bad values clamp to zero", func() {
			So(d.Has("zzz"), ShouldBeFalse)
			So(d.Share(modeA), ShouldEqual, 10)
			So(d.Share(modeB), ShouldEqual, 0)
			So(d.Share(modeC), ShouldEqual, 0)
			So(d.Share(modeD), ShouldEqual, 0)
			So(d.Sum(), ShouldEqual, 10)
		})

		Convey("And With never mutates the receiver", func() {
			d2 := d.With(modeD, 7)
			So(d.Share(modeD), ShouldEqual, 0)
			So(d2.Share(modeD), ShouldEqual, 7)
			So(d.With("zzz", 3).Has("zzz"), ShouldBeFalse)
		})
	})

	Convey("Dominant picks the largest share and the earliest on ties", t, func() {
		m, s := dist(10, 30, 30, 5).Dominant()
		So(m, ShouldEqual, modeB)
		So(s, ShouldEqual, 30)
	})

	Convey("JSON rendering rounds shares to two places", t, func() {
		b, err := json.Marshal(dist(100.0/3, 0, 0, 200.0/3))
		So(err, ShouldBeNil)
		var got map[string]float64
		So(json.Unmarshal(b, &got), ShouldBeNil)
		So(got["a"], ShouldEqual, 33.33)
		So(got["d"], ShouldEqual, 66.67)
		So(got, ShouldContainKey, "b")
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given arbitrary non-zero distributions", t, func() {
		cases := []impact.Distribution{
			dist(1, 3, 0, 0),
			dist(0.001, 0.002, 0.003, 0.004),
			dist(250, 10, 90, 3.3),
			dist(0, 0, 0, 42),
			dist(1e6, 1, 1, 1),
		}

		Convey("Then every normalized sum is 100 within 1e-6", func() {
			for _, d := range cases {
				So(impact.Normalize(d).Sum(), ShouldAlmostEqual, 100, 1e-6)
			}
		})

		Convey("And ratios between non-zero shares are preserved", func() {
			for _, d := range cases {
				n := impact.Normalize(d)
				for _, k := range testModes {
					for _, j := range testModes {
						if d.Share(k) == 0 || d.Share(j) == 0 {
							continue
						}
						So(n.Share(k)/n.Share(j), ShouldAlmostEqual, d.Share(k)/d.Share(j), 1e-9)
					}
				}
			}
		})

		Convey("And zero shares stay zero", func() {
			n := impact.Normalize(dist(1, 3, 0, 0))
			So(n.Share(modeA), ShouldAlmostEqual, 25)
			So(n.Share(modeB), ShouldAlmostEqual, 75)
			So(n.Share(modeC), ShouldEqual, 0)
		})
	})

	Convey("Given an all-zero distribution", t, func() {
		d := dist(0, 0, 0, 0)

		Convey("Then it is returned unchanged", func() {
			n := impact.Normalize(d)
			So(n.IsZero(), ShouldBeTrue)
			So(n.Map(), ShouldResemble, d.Map())
		})
	})
}

func TestKey(t *testing.T) {
	Convey("Enum spellings fold to one canonical key", t, func() {
		So(impact.Key("Urban_Core"), ShouldEqual, "urban-core")
		So(impact.Key("  urban core "), ShouldEqual, "urban-core")
		So(impact.Key("URBAN-CORE"), ShouldEqual, "urban-core")
		So(impact.Key(""), ShouldEqual, "")
	})

	Convey("RoundTo never leaks NaN", t, func() {
		So(impact.RoundTo(math.NaN(), 2), ShouldEqual, 0)
		So(impact.RoundTo(1.005, 0), ShouldEqual, 1)
		So(impact.RoundTo(2.345, 1), ShouldAlmostEqual, 2.3)
	})
}
