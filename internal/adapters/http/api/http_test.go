package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/pitchline/internal/adapters/http/api"
	service "github.com/okian/pitchline/internal/app"
	"github.com/okian/pitchline/internal/domain/model"
	"github.com/okian/pitchline/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	events []model.CanonicalEvent
	match  model.MatchContext
	layout types.LayoutResult
	briefs []service.ClusterBrief
	images []service.EventImage

	lastWidth float64
}

func (m *mockDependencies) Timeline(ctx context.Context, payload model.MatchPayload) ([]model.CanonicalEvent, model.MatchContext) {
	return m.events, m.match
}

func (m *mockDependencies) Layout(ctx context.Context, payload model.MatchPayload, width float64) (types.LayoutResult, model.MatchContext) {
	m.lastWidth = width
	return m.layout, m.match
}

func (m *mockDependencies) Briefs(ctx context.Context, payload model.MatchPayload) []service.ClusterBrief {
	return m.briefs
}

func (m *mockDependencies) Images(ctx context.Context, payload model.MatchPayload) []service.EventImage {
	return m.images
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func sampleDeps() *mockDependencies {
	return &mockDependencies{
		events: []model.CanonicalEvent{
			{Minute: 23, MinuteText: "23", Type: model.Goal, PrimaryActor: "A. Smith", Side: model.Home},
		},
		match: model.MatchContext{MatchID: "m-1", HomeTeam: "Home FC", AwayTeam: "Away United"},
		layout: types.LayoutResult{
			Positions:  []float64{24},
			TotalWidth: 960,
		},
		briefs: []service.ClusterBrief{
			{Key: "23|goal", Brief: types.Brief{Text: "Opening goal.", Provenance: types.ProvenanceRemote}},
		},
		images: []service.EventImage{
			{Minute: "23", Actor: "A. Smith", URL: "https://img.example/smith.png"},
		},
	}
}

func payloadBody() *strings.Reader {
	return strings.NewReader(`{"home_team":"Home FC","away_team":"Away United","timeline":[{"minute":"23","type":"goal","player":"A. Smith"}]}`)
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServerRegister(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(sampleDeps())

		Convey("Then the health endpoint is accessible", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then the stats endpoint returns JSON", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
		})
	})
}

func TestTimelineEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := sampleDeps()
		mux := newMux(deps)

		Convey("When posting a match payload", func() {
			req := httptest.NewRequest("POST", "/timeline", payloadBody())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Match  model.MatchContext     `json:"match"`
				Events []model.CanonicalEvent `json:"events"`
			}
			So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
			So(resp.Match.HomeTeam, ShouldEqual, "Home FC")
			So(len(resp.Events), ShouldEqual, 1)
			So(resp.Events[0].PrimaryActor, ShouldEqual, "A. Smith")
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest("POST", "/timeline", strings.NewReader("not json"))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the payload is empty", func() {
			req := httptest.NewRequest("POST", "/timeline", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is GET", func() {
			req := httptest.NewRequest("GET", "/timeline", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestLayoutEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := sampleDeps()
		mux := newMux(deps)

		Convey("When posting with an explicit width", func() {
			req := httptest.NewRequest("POST", "/layout?width=1200", payloadBody())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastWidth, ShouldEqual, 1200)

			var resp struct {
				Layout types.LayoutResult `json:"layout"`
			}
			So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
			So(resp.Layout.TotalWidth, ShouldEqual, 960)
		})

		Convey("When width is omitted, zero is passed through", func() {
			req := httptest.NewRequest("POST", "/layout", payloadBody())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastWidth, ShouldEqual, 0)
		})

		Convey("When width is not a number", func() {
			req := httptest.NewRequest("POST", "/layout?width=wide", payloadBody())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestBriefsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(sampleDeps())

		Convey("When posting a match payload", func() {
			req := httptest.NewRequest("POST", "/briefs", payloadBody())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Briefs []service.ClusterBrief `json:"briefs"`
			}
			So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
			So(len(resp.Briefs), ShouldEqual, 1)
			So(resp.Briefs[0].Key, ShouldEqual, "23|goal")
			So(resp.Briefs[0].Brief.Provenance, ShouldEqual, types.ProvenanceRemote)
		})
	})
}

func TestImagesEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(sampleDeps())

		Convey("When posting a match payload", func() {
			req := httptest.NewRequest("POST", "/images", payloadBody())
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				Images []service.EventImage `json:"images"`
			}
			So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
			So(len(resp.Images), ShouldEqual, 1)
			So(resp.Images[0].URL, ShouldEqual, "https://img.example/smith.png")
		})
	})
}
