package repository

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchline/internal/domain/types"
)

// storeFactories lets every contract test run against both implementations.
var storeFactories = map[string]func() (Store, error){
	"sqlite": func() (Store, error) { return OpenSQLite(":memory:") },
	"memory": func() (Store, error) { return NewMemoryStore(), nil },
}

func TestBriefRoundTrip(t *testing.T) {
	for name, factory := range storeFactories {
		Convey("Given an empty "+name+" store", t, func() {
			store, err := factory()
			So(err, ShouldBeNil)
			defer store.Close()
			ctx := context.Background()

			Convey("When a brief is saved", func() {
				err := store.SaveBrief(ctx, BriefRecord{
					SessionKey: "session-a",
					CacheKey:   "23|goal",
					Text:       "A. Smith slots home the opener.",
					Provenance: types.ProvenanceRemote,
				})
				So(err, ShouldBeNil)

				Convey("Then it can be read back", func() {
					rec, err := store.GetBrief(ctx, "session-a", "23|goal")
					So(err, ShouldBeNil)
					So(rec.Text, ShouldEqual, "A. Smith slots home the opener.")
					So(rec.Provenance, ShouldEqual, types.ProvenanceRemote)
					So(rec.UpdatedAt.IsZero(), ShouldBeFalse)
				})

				Convey("Then another session does not see it", func() {
					_, err := store.GetBrief(ctx, "session-b", "23|goal")
					So(err, ShouldEqual, ErrNotFound)
				})

				Convey("Then the count reflects stored briefs", func() {
					count, err := store.BriefCount(ctx)
					So(err, ShouldBeNil)
					So(count, ShouldEqual, 1)
				})
			})

			Convey("When a missing brief is requested", func() {
				_, err := store.GetBrief(ctx, "session-a", "absent")

				Convey("Then ErrNotFound is returned", func() {
					So(err, ShouldEqual, ErrNotFound)
				})
			})
		})
	}
}

func TestBriefProvenanceRule(t *testing.T) {
	for name, factory := range storeFactories {
		Convey("Given a "+name+" store holding a remote brief", t, func() {
			store, err := factory()
			So(err, ShouldBeNil)
			defer store.Close()
			ctx := context.Background()

			remote := BriefRecord{
				SessionKey: "session-a",
				CacheKey:   "67|substitution",
				Text:       "A double change to chase the game.",
				Provenance: types.ProvenanceRemote,
			}
			So(store.SaveBrief(ctx, remote), ShouldBeNil)

			Convey("When a fallback brief is saved for the same key", func() {
				fallback := remote
				fallback.Text = "Substitution"
				fallback.Provenance = types.ProvenanceFallback
				So(store.SaveBrief(ctx, fallback), ShouldBeNil)

				Convey("Then the remote brief is kept", func() {
					rec, err := store.GetBrief(ctx, "session-a", "67|substitution")
					So(err, ShouldBeNil)
					So(rec.Provenance, ShouldEqual, types.ProvenanceRemote)
					So(rec.Text, ShouldEqual, "A double change to chase the game.")
				})
			})

			Convey("When a newer remote brief is saved", func() {
				updated := remote
				updated.Text = "Fresh legs enter in the 67th."
				So(store.SaveBrief(ctx, updated), ShouldBeNil)

				Convey("Then the text is replaced", func() {
					rec, err := store.GetBrief(ctx, "session-a", "67|substitution")
					So(err, ShouldBeNil)
					So(rec.Text, ShouldEqual, "Fresh legs enter in the 67th.")
				})
			})
		})

		Convey("Given a "+name+" store holding a fallback brief", t, func() {
			store, err := factory()
			So(err, ShouldBeNil)
			defer store.Close()
			ctx := context.Background()

			So(store.SaveBrief(ctx, BriefRecord{
				SessionKey: "session-a",
				CacheKey:   "12|yellow_card",
				Text:       "Yellow card for B. Jones",
				Provenance: types.ProvenanceFallback,
			}), ShouldBeNil)

			Convey("When a remote brief arrives for the same key", func() {
				So(store.SaveBrief(ctx, BriefRecord{
					SessionKey: "session-a",
					CacheKey:   "12|yellow_card",
					Text:       "Jones goes into the book early.",
					Provenance: types.ProvenanceRemote,
				}), ShouldBeNil)

				Convey("Then the fallback is promoted to remote", func() {
					rec, err := store.GetBrief(ctx, "session-a", "12|yellow_card")
					So(err, ShouldBeNil)
					So(rec.Provenance, ShouldEqual, types.ProvenanceRemote)
				})
			})
		})
	}
}

func TestImageRoundTrip(t *testing.T) {
	for name, factory := range storeFactories {
		Convey("Given an empty "+name+" store", t, func() {
			store, err := factory()
			So(err, ShouldBeNil)
			defer store.Close()
			ctx := context.Background()

			Convey("When an image is saved", func() {
				So(store.SaveImage(ctx, ImageRecord{
					SessionKey: "session-a",
					CacheKey:   "player|a. smith",
					URL:        "https://img.example.com/smith.png",
				}), ShouldBeNil)

				Convey("Then it can be read back", func() {
					rec, err := store.GetImage(ctx, "session-a", "player|a. smith")
					So(err, ShouldBeNil)
					So(rec.URL, ShouldEqual, "https://img.example.com/smith.png")
				})
			})

			Convey("When a missing image is requested", func() {
				_, err := store.GetImage(ctx, "session-a", "player|unknown")

				Convey("Then ErrNotFound is returned", func() {
					So(err, ShouldEqual, ErrNotFound)
				})
			})
		})
	}
}

func TestBriefsForSession(t *testing.T) {
	Convey("Given a store with briefs from two sessions", t, func() {
		store := NewMemoryStore()
		defer store.Close()
		ctx := context.Background()

		So(store.SaveBrief(ctx, BriefRecord{SessionKey: "a", CacheKey: "23|goal", Text: "x", Provenance: types.ProvenanceFallback}), ShouldBeNil)
		So(store.SaveBrief(ctx, BriefRecord{SessionKey: "a", CacheKey: "67|goal", Text: "y", Provenance: types.ProvenanceFallback}), ShouldBeNil)
		So(store.SaveBrief(ctx, BriefRecord{SessionKey: "b", CacheKey: "23|goal", Text: "z", Provenance: types.ProvenanceFallback}), ShouldBeNil)

		Convey("When one session is listed", func() {
			records, err := store.BriefsForSession(ctx, "a")

			Convey("Then only its briefs are returned", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
			})
		})
	})
}
