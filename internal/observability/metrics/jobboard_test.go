package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Kabuna254/Job-App/internal/domain/auth"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
)

func TestEmitAuthSubmission(t *testing.T) {
	var rec statsd.Recorder
	EmitAuthSubmission(&rec, AuthSubmission{
		Form:     "login",
		Role:     "employer",
		Result:   ResultFailed,
		Duration: 20 * time.Millisecond,
		Err:      domainauth.InvalidCredentials(""),
	})

	counts := rec.Named(AuthSubmit)
	require.Len(t, counts, 1)
	assert.Equal(t, map[string]string{
		"form":        "login",
		"role":        "employer",
		"result":      ResultFailed,
		"error_class": "auth_invalid_credentials",
	}, counts[0].Tags)

	timings := rec.Named(AuthDuration)
	require.Len(t, timings, 1)
	assert.InDelta(t, 20.0, timings[0].Value, 0.001)
}

func TestEmitAuthSubmission_InFlightHasNoTiming(t *testing.T) {
	var rec statsd.Recorder
	EmitAuthSubmission(&rec, AuthSubmission{Form: "register", Result: ResultInFlight})
	assert.Len(t, rec.Named(AuthSubmit), 1)
	assert.Empty(t, rec.Named(AuthDuration))
	assert.NotContains(t, rec.Named(AuthSubmit)[0].Tags, "role")
}

func TestEmitListingLoad(t *testing.T) {
	var rec statsd.Recorder
	EmitListingLoad(&rec, ListingLoad{Result: ResultDemo, Duration: time.Millisecond})
	require.Len(t, rec.Named(ListingFetch), 1)
	assert.Equal(t, map[string]string{"result": ResultDemo}, rec.Named(ListingFetch)[0].Tags)
	assert.Len(t, rec.Named(ListingDuration), 1)
}

func TestEmitPurge(t *testing.T) {
	var rec statsd.Recorder
	EmitPurge(&rec, 4, nil)
	EmitPurge(&rec, 0, errors.New("locked"))

	require.Len(t, rec.Named(StatePurged), 1)
	assert.InDelta(t, 4.0, rec.Named(StatePurged)[0].Value, 0)
	require.Len(t, rec.Named(StatePurgeError), 1)
	assert.Equal(t, "errors_errorstring", rec.Named(StatePurgeError)[0].Tags["error_class"])
}

func TestNilSinkIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitAuthSubmission(nil, AuthSubmission{Form: "login"})
		EmitListingLoad(nil, ListingLoad{})
		EmitPurge(nil, 1, nil)
	})
}

func TestCloneTags(t *testing.T) {
	assert.Nil(t, CloneTags(nil))
	src := map[string]string{"a": "1"}
	cp := CloneTags(src)
	cp["a"] = "2"
	assert.Equal(t, "1", src["a"])
}
