package ports_test

import (
	"testing"

	mocks "github.com/Kabuna254/Job-App/internal/mocks/auth"
	"github.com/Kabuna254/Job-App/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AccountAPI = (*mocks.MockAccountAPI)(nil)
	var _ ports.KVStore = (*mocks.MemoryKVStore)(nil)
	var _ ports.TokenVerifier = mocks.StaticVerifier{}
	var _ ports.JobsAPI = (*mocks.MockJobsAPI)(nil)
}
