// Package testutil connects integration tests to Postgres and Redis.
//
// Tests are skipped when the service is unreachable. Set TEST_REQUIRE_INFRA=1
// in CI to turn those skips into failures.
package testutil

import (
	"os"
	"strconv"
	"testing"
	"time"
)

// TestTime is the fixed instant tests pin their clocks to.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// unavailable skips t, or fails it when infrastructure is required.
func unavailable(t testing.TB, what string, err error) {
	t.Helper()
	if required, _ := strconv.ParseBool(os.Getenv("TEST_REQUIRE_INFRA")); required {
		t.Fatalf("%s not available: %v", what, err)
	}
	t.Skipf("%s not available: %v", what, err)
}

func closeQuietly(t testing.TB, what string, c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		t.Logf("close %s: %v", what, err)
	}
}
