package brief

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestFetchBriefs(t *testing.T) {
	Convey("Given a provider returning briefs", t, func(c C) {
		var gotReq BatchRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.Method, ShouldEqual, http.MethodPost)
			c.So(r.Header.Get("Authorization"), ShouldEqual, "Bearer test-key")
			c.So(json.NewDecoder(r.Body).Decode(&gotReq), ShouldBeNil)
			json.NewEncoder(w).Encode(batchResponse{Items: []Item{
				{Brief: "Smith opens the scoring with a low drive.", PlayerImage: "https://img/smith.png"},
			}})
		}))
		defer server.Close()

		client := New(server.URL, WithAPIKey("test-key"))

		Convey("When a batch is fetched", func() {
			items, err := client.FetchBriefs(context.Background(), BatchRequest{
				EventName: "Home FC vs Away United",
				Date:      "2026-05-02",
				Events: []EventPayload{
					{Minute: "23", Type: "goal", Player: "A. Smith", Team: "Home FC"},
				},
			})

			Convey("Then items come back aligned with the request", func() {
				So(err, ShouldBeNil)
				So(items, ShouldHaveLength, 1)
				So(items[0].Brief, ShouldEqual, "Smith opens the scoring with a low drive.")
				So(gotReq.EventName, ShouldEqual, "Home FC vs Away United")
				So(gotReq.Events, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given a provider returning an error status", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := New(server.URL)

		Convey("When a batch is fetched", func() {
			_, err := client.FetchBriefs(context.Background(), BatchRequest{EventName: "x"})

			Convey("Then ErrBadStatus is wrapped in the error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "status 502")
			})
		})
	})

	Convey("Given a client with no endpoint", t, func() {
		client := New("")

		Convey("When a batch is fetched", func() {
			_, err := client.FetchBriefs(context.Background(), BatchRequest{EventName: "x"})

			Convey("Then ErrNotConfigured is returned", func() {
				So(err, ShouldEqual, ErrNotConfigured)
			})
		})
	})
}

func TestPayloadForCluster(t *testing.T) {
	Convey("Given a cluster with two events", t, func() {
		match := model.MatchContext{HomeTeam: "Home FC", AwayTeam: "Away United"}
		cluster := model.Cluster{
			MinuteKey: "45+",
			Events: []model.CanonicalEvent{
				{MinuteText: "45+1", Type: model.Goal, Side: model.Home, PrimaryActor: "A. Smith", Note: "header",
					Tags: []model.Tag{
						{Name: "goal", Source: model.TagProvider},
						{Name: "header", Source: model.TagHeuristic},
					}},
				{MinuteText: "45+3", Type: model.YellowCard, Side: model.Away, PrimaryActor: "B. Jones"},
			},
		}

		Convey("When flattened into the provider shape", func() {
			payloads := PayloadForCluster(cluster, match)

			Convey("Then each event carries its team name", func() {
				So(payloads, ShouldHaveLength, 2)
				So(payloads[0].Team, ShouldEqual, "Home FC")
				So(payloads[0].Type, ShouldEqual, "goal")
				So(payloads[1].Team, ShouldEqual, "Away United")
			})

			Convey("Then tag names ride along with the event", func() {
				So(payloads[0].Tags, ShouldResemble, []string{"goal", "header"})
				So(payloads[1].Tags, ShouldBeNil)
			})
		})
	})
}
