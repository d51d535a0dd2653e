package types_test

import (
	"testing"

	types "github.com/okian/pitchline/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBrief(t *testing.T) {
	Convey("Given a Brief struct", t, func() {
		Convey("When creating a resolved remote brief", func() {
			brief := types.Brief{
				Text:       "A. Smith curled in the opener.",
				Provenance: types.ProvenanceRemote,
			}

			Convey("Then it should carry the remote provenance", func() {
				So(brief.Text, ShouldNotBeEmpty)
				So(brief.Provenance, ShouldEqual, "remote")
				So(brief.Pending, ShouldBeFalse)
			})
		})

		Convey("When creating a placeholder brief", func() {
			brief := types.Brief{
				Text:       "Goal by A. Smith (Home FC)",
				Provenance: types.ProvenanceFallback,
				Pending:    true,
			}

			Convey("Then it should be pending with fallback provenance", func() {
				So(brief.Provenance, ShouldEqual, "local-fallback")
				So(brief.Pending, ShouldBeTrue)
			})
		})
	})
}

func TestLayoutResult(t *testing.T) {
	Convey("Given a LayoutResult struct", t, func() {
		Convey("When creating an empty result", func() {
			result := types.LayoutResult{}

			Convey("Then it should have zero values", func() {
				So(result.Clusters, ShouldBeNil)
				So(result.Positions, ShouldBeNil)
				So(result.TotalWidth, ShouldEqual, 0.0)
				So(result.Anchors, ShouldBeNil)
			})
		})

		Convey("When populating positions and anchors", func() {
			result := types.LayoutResult{
				Positions:  []float64{24, 120, 480},
				TotalWidth: 960,
				Anchors: []types.Anchor{
					{Minute: 0, X: 0, Label: "Start"},
					{Minute: 45, X: 300, Label: "HT"},
					{Minute: 90, X: 960, Label: "FT"},
				},
			}

			Convey("Then positions and anchors should align with the width", func() {
				So(result.Positions, ShouldHaveLength, 3)
				So(result.Anchors, ShouldHaveLength, 3)
				So(result.Anchors[0].Label, ShouldEqual, "Start")
				So(result.Anchors[2].X, ShouldBeLessThanOrEqualTo, result.TotalWidth)
			})
		})
	})
}
