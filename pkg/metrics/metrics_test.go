package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalRecordHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		So(globalManager, ShouldNotBeNil)

		Convey("When recording timeline metrics", func() {
			So(func() {
				RecordTimelineBuilt(12)
				RecordEventNormalized()
				RecordEventDropped()
				RecordEventDeduplicated()
				RecordSynthesisFallback()
				RecordLayoutComputation(1.2, 7)
			}, ShouldNotPanic)
		})

		Convey("When recording enrichment metrics", func() {
			So(func() {
				RecordBriefCacheHit("memory")
				RecordBriefCacheHit("session")
				RecordBriefCacheMiss()
				RecordBriefPlaceholder()
				RecordEnrichmentRequest()
				RecordEnrichmentFailure()
				RecordEnrichmentFallback()
				RecordEnrichmentLatency(42.0)
				RecordImageCacheHit()
				RecordImageCacheMiss()
				RecordRosterLookup()
			}, ShouldNotPanic)
		})

		Convey("When recording queue, worker and HTTP metrics", func() {
			So(func() {
				UpdateQueueSize(3)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.03)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordQueueProcessingLatency(0.5)
				UpdateWorkerActiveCount(4)
				RecordWorkerProcessingLatency(10)
				RecordWorkerError()
				RecordHTTPRequest("timeline", "POST", "200")
				RecordHTTPRequestDuration("timeline", "POST", "200", 3.4)
			}, ShouldNotPanic)
		})

		Convey("When recording error and system metrics", func() {
			So(func() {
				RecordErrorByComponent("enrich", "remote_failure")
				RecordErrorByType("remote_failure", "medium")
				RecordErrorByEndpoint("briefs", "POST", "client_error")
				RecordErrorLatency("enrich", "remote_failure", 100)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.2)
				UpdateActiveSessions(2)
				UpdateWorkerCount(8)
			}, ShouldNotPanic)
		})

		Convey("When fetching the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
