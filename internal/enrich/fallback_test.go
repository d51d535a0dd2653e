package enrich

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchline/internal/domain/model"
)

func TestPoorBrief(t *testing.T) {
	Convey("Given remote brief candidates", t, func() {
		cases := map[string]bool{
			"A. Smith buries the penalty to level the match.": false,
			"Goal scored late on":                             false,
			"Goal:":                                           true,
			"Goal":                                            true,
			"  short  ":                                       true,
			"":                                                true,
			"Substitution:":                                   true,
		}

		for text, poor := range cases {
			Convey("Then "+text+" is judged correctly", func() {
				So(PoorBrief(text), ShouldEqual, poor)
			})
		}
	})
}

func TestFallbackBrief(t *testing.T) {
	match := model.MatchContext{HomeTeam: "Home FC", AwayTeam: "Away United"}

	Convey("Given a single goal cluster", t, func() {
		cluster := model.Cluster{
			MinuteKey: "23",
			Events: []model.CanonicalEvent{
				{Type: model.Goal, Side: model.Home, PrimaryActor: "A. Smith"},
			},
		}

		Convey("Then the brief names the scorer and team", func() {
			So(FallbackBrief(cluster, match), ShouldEqual, "Goal by A. Smith (Home FC)")
		})
	})

	Convey("Given a substitution with both players", t, func() {
		cluster := model.Cluster{
			MinuteKey: "70",
			Events: []model.CanonicalEvent{
				{Type: model.Substitution, Side: model.Away, PrimaryActor: "G. Lind", SecondaryActor: "H. Mart"},
			},
		}

		Convey("Then the brief shows the swap", func() {
			So(FallbackBrief(cluster, match), ShouldEqual, "Substitution for Away United: G. Lind on for H. Mart")
		})
	})

	Convey("Given a multi-event cluster", t, func() {
		cluster := model.Cluster{
			MinuteKey: "45+",
			Events: []model.CanonicalEvent{
				{Type: model.Goal, Side: model.Home, PrimaryActor: "A. Smith"},
				{Type: model.YellowCard, Side: model.Away, PrimaryActor: "B. Jones"},
			},
		}

		Convey("Then the lines are joined in order", func() {
			So(FallbackBrief(cluster, match), ShouldEqual,
				"Goal by A. Smith (Home FC). Yellow card for B. Jones (Away United)")
		})
	})

	Convey("Given events without actors or notes", t, func() {
		cluster := model.Cluster{
			MinuteKey: "81",
			Events:    []model.CanonicalEvent{{Type: model.Other, Side: model.Home}},
		}

		Convey("Then the brief falls back to the minute", func() {
			So(FallbackBrief(cluster, match), ShouldEqual, "Minute 81")
		})
	})

	Convey("Given a card without a team name", t, func() {
		cluster := model.Cluster{
			MinuteKey: "12",
			Events: []model.CanonicalEvent{
				{Type: model.RedCard, Side: model.Home, PrimaryActor: "C. Vega"},
			},
		}

		Convey("Then the brief omits the parenthetical", func() {
			So(FallbackBrief(cluster, model.MatchContext{}), ShouldEqual, "Red card for C. Vega")
		})
	})
}
