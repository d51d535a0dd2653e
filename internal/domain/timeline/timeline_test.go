package timeline_test

import (
	"strings"
	"testing"

	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/internal/domain/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

func TestContext(t *testing.T) {
	Convey("Given match payloads", t, func() {
		Convey("When teams are plain strings", func() {
			ctx := timeline.Context(model.MatchPayload{
				"event_home_team": "Home FC",
				"event_away_team": "Away United",
				"event_key":       "m-1001",
				"event_date":      "2026-05-02",
			})
			So(ctx.HomeTeam, ShouldEqual, "Home FC")
			So(ctx.AwayTeam, ShouldEqual, "Away United")
			So(ctx.Identity(), ShouldEqual, "m-1001")
		})

		Convey("When teams are nested objects", func() {
			ctx := timeline.Context(model.MatchPayload{
				"home_team": map[string]any{"name": "Home FC"},
				"away_team": map[string]any{"name": "Away United"},
			})
			So(ctx.HomeTeam, ShouldEqual, "Home FC")
			So(ctx.EventName(), ShouldEqual, "Home FC vs Away United")
		})

		Convey("When nothing matches", func() {
			ctx := timeline.Context(model.MatchPayload{})
			So(ctx.HomeTeam, ShouldBeEmpty)
			So(ctx.AwayTeam, ShouldBeEmpty)
		})
	})
}

func TestBuildFromProviderTimeline(t *testing.T) {
	Convey("Given a payload with an explicit timeline", t, func() {
		s := timeline.New()
		payload := model.MatchPayload{
			"home_team": "Home FC",
			"away_team": "Away United",
			"timeline": []any{
				map[string]any{"minute": "10", "type": "goal", "player": "A. Smith", "team": "Home FC"},
				map[string]any{"minute": "45+2", "card": "yellow card", "player": "B. Jones"},
				map[string]any{"player": "no minute, dropped"},
			},
		}

		Convey("When building", func() {
			events := s.Build(payload)

			Convey("Then parseable entries survive in minute order", func() {
				So(len(events), ShouldEqual, 2)
				So(events[0].Minute, ShouldEqual, 10)
				So(events[0].Type, ShouldEqual, model.Goal)
				So(events[1].MinuteText, ShouldEqual, "45+2")
				So(events[1].Type, ShouldEqual, model.YellowCard)
			})
		})
	})

	Convey("Given a timeline shaped as an object of arrays", t, func() {
		s := timeline.New()
		payload := model.MatchPayload{
			"home_team": "Home FC",
			"away_team": "Away United",
			"events": map[string]any{
				"first_half":  []any{map[string]any{"minute": "12", "type": "goal", "player": "C. Diaz"}},
				"second_half": []any{map[string]any{"minute": "78", "type": "goal", "player": "D. Costa"}},
			},
		}

		Convey("When building", func() {
			events := s.Build(payload)

			Convey("Then the nested arrays are flattened", func() {
				So(len(events), ShouldEqual, 2)
				So(events[0].Minute, ShouldEqual, 12)
				So(events[1].Minute, ShouldEqual, 78)
			})
		})
	})
}

func TestBuildFromStructuredArrays(t *testing.T) {
	Convey("Given a payload with only structured arrays", t, func() {
		s := timeline.New()
		payload := model.MatchPayload{
			"event_home_team": "Home FC",
			"event_away_team": "Away United",
			"goalscorers": []any{
				map[string]any{"time": "23", "home_scorer": "A. Smith", "score": "1-0"},
				map[string]any{"time": "61", "away_scorer": "E. Novak", "away_assist": "F. Horak", "score": "1-1"},
			},
			"cards": []any{
				map[string]any{"time": "30", "home_fault": "B. Jones", "card": "yellow card"},
			},
			"substitutions": []any{
				map[string]any{"time": "70", "team": "away", "substitution": map[string]any{"in": "G. Lind", "out": "H. Berg"}},
			},
		}

		Convey("When building", func() {
			events := s.Build(payload)

			Convey("Then all structured sources contribute", func() {
				So(len(events), ShouldEqual, 4)
				So(events[0].Type, ShouldEqual, model.Goal)
				So(events[0].Side, ShouldEqual, model.Home)
				So(events[0].PrimaryActor, ShouldEqual, "A. Smith")
				So(events[1].Type, ShouldEqual, model.YellowCard)
				So(events[2].Type, ShouldEqual, model.Goal)
				So(events[2].Side, ShouldEqual, model.Away)
				So(events[2].SecondaryActor, ShouldEqual, "F. Horak")
				So(events[3].Type, ShouldEqual, model.Substitution)
				So(events[3].PrimaryActor, ShouldEqual, "G. Lind")
				So(events[3].SecondaryActor, ShouldEqual, "H. Berg")
			})
		})
	})
}

func TestBuildFromCommentary(t *testing.T) {
	Convey("Given a payload with only commentary", t, func() {
		s := timeline.New()
		payload := model.MatchPayload{
			"home_team": "Home FC",
			"away_team": "Away United",
			"comments": []any{
				map[string]any{"time": "15", "comment": "Goal! A. Smith scores for Home FC"},
				map[string]any{"time": "40", "comment": "Yellow card for a cynical foul"},
				map[string]any{"comment": "half time analysis, no minute"},
			},
		}

		Convey("When building", func() {
			events := s.Build(payload)

			Convey("Then keyword detection drives the types", func() {
				So(len(events), ShouldEqual, 2)
				So(events[0].Type, ShouldEqual, model.Goal)
				So(events[0].Note, ShouldContainSubstring, "A. Smith")
				So(events[1].Type, ShouldEqual, model.YellowCard)
			})
		})
	})
}

func TestMergeDedup(t *testing.T) {
	Convey("Given overlapping provider and commentary data", t, func() {
		s := timeline.New()
		payload := model.MatchPayload{
			"home_team": "Home FC",
			"away_team": "Away United",
			"timeline": []any{
				map[string]any{"minute": "23", "type": "goal", "player": "A. Smith", "note": "Goal by A. Smith"},
			},
			"comments": []any{
				map[string]any{"time": "23", "comment": "Goal by A. Smith"},
			},
		}

		Convey("When building", func() {
			events := s.Build(payload)

			Convey("Then the provider entry wins the dedup key", func() {
				So(len(events), ShouldEqual, 1)
				So(events[0].PrimaryActor, ShouldEqual, "A. Smith")
				So(events[0].Type, ShouldEqual, model.Goal)
			})
		})
	})

	Convey("Given non-ASCII commentary diverging past the byte-length prefix", t, func() {
		s := timeline.New()
		// 40 two-byte runes: the notes share their first 80 bytes but
		// differ well inside the first 80 characters.
		prefix := strings.Repeat("ö", 40)
		payload := model.MatchPayload{
			"home_team": "Home FC",
			"away_team": "Away United",
			"comments": []any{
				map[string]any{"time": "30", "comment": prefix + " shot saved"},
				map[string]any{"time": "30", "comment": prefix + " corner won"},
			},
		}

		Convey("When building", func() {
			events := s.Build(payload)

			Convey("Then both entries survive as distinct events", func() {
				So(len(events), ShouldEqual, 2)
			})
		})
	})
}

func TestBuildFallback(t *testing.T) {
	Convey("Given a payload with zero timeline-like fields", t, func() {
		s := timeline.New()
		payload := model.MatchPayload{
			"home_team":   "Home FC",
			"away_team":   "Away United",
			"final_score": "2-1",
		}

		Convey("When building", func() {
			events := s.Build(payload)

			Convey("Then exactly one fallback event is synthesized", func() {
				So(len(events), ShouldEqual, 1)
				So(events[0].MinuteText, ShouldBeEmpty)
				So(events[0].Type, ShouldEqual, model.Other)
				So(events[0].Note, ShouldEqual, "Home FC 2-1 Away United")
			})
		})
	})
}

func TestBuildSortStability(t *testing.T) {
	Convey("Given events around the stoppage boundary", t, func() {
		s := timeline.New()
		payload := model.MatchPayload{
			"home_team": "Home FC",
			"away_team": "Away United",
			"timeline": []any{
				map[string]any{"minute": "46", "type": "goal", "player": "late"},
				map[string]any{"minute": "45+2", "type": "goal", "player": "stoppage"},
				map[string]any{"minute": "45", "type": "goal", "player": "regulation"},
			},
		}

		Convey("When building", func() {
			events := s.Build(payload)

			Convey("Then stoppage time sorts between 45 and 46", func() {
				So(events[0].PrimaryActor, ShouldEqual, "regulation")
				So(events[1].PrimaryActor, ShouldEqual, "stoppage")
				So(events[2].PrimaryActor, ShouldEqual, "late")
			})
		})
	})
}
