// Package metrics emits the job board's StatsD series.
package metrics

import (
	"time"

	obserrors "github.com/Kabuna254/Job-App/internal/observability/errors"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
)

// Result values for the result tag.
const (
	ResultSuccess  = "success"
	ResultFailed   = "failed"
	ResultInFlight = "in_flight"
	ResultInvalid  = "invalid"

	ResultLive     = "live"
	ResultDemo     = "demo"
	ResultDegraded = "degraded"
)

// Metric names.
const (
	AuthSubmit      = "auth.submit"
	AuthDuration    = "auth.duration"
	ListingFetch    = "listing.fetch"
	ListingDuration = "listing.duration"
	StatePurged     = "state.purged"
	StatePurgeError = "state.purge_error"
)

// AuthSubmission describes one settled login or registration submission.
type AuthSubmission struct {
	Form     string // "login" or "register"
	Role     string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitAuthSubmission counts the submission and times calls that reached the API.
func EmitAuthSubmission(sink statsd.Sink, in AuthSubmission) {
	if sink == nil {
		return
	}
	tags := map[string]string{"form": in.Form, "result": in.Result}
	if in.Role != "" {
		tags["role"] = in.Role
	}
	if class := obserrors.Classify(in.Err); class != "" {
		tags["error_class"] = class
	}
	sink.Count(AuthSubmit, 1, tags)
	if in.Duration > 0 {
		sink.Timing(AuthDuration, in.Duration, CloneTags(tags))
	}
}

// ListingLoad describes one landing page listing load.
type ListingLoad struct {
	Result   string
	Duration time.Duration
	Err      error
}

// EmitListingLoad counts the load by outcome and times the upstream call.
func EmitListingLoad(sink statsd.Sink, in ListingLoad) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": in.Result}
	if class := obserrors.Classify(in.Err); class != "" {
		tags["error_class"] = class
	}
	sink.Count(ListingFetch, 1, tags)
	if in.Duration > 0 {
		sink.Timing(ListingDuration, in.Duration, CloneTags(tags))
	}
}

// EmitPurge records one reaper pass.
func EmitPurge(sink statsd.Sink, removed int64, err error) {
	if sink == nil {
		return
	}
	if err != nil {
		sink.Count(StatePurgeError, 1, map[string]string{"error_class": obserrors.Classify(err)})
		return
	}
	sink.Gauge(StatePurged, float64(removed), nil)
}

// CloneTags returns a shallow copy of src, or nil when it is empty.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
