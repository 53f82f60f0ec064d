package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kabuna254/Job-App/internal/errors"
)

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errCode string
		message string
	}{
		{"unavailable", fmt.Errorf("persist theme: %w", apperrors.Wrap(errors.New("SQLITE_BUSY"), apperrors.ErrCodeUnavailable, "store busy")), http.StatusServiceUnavailable, "unavailable", "store busy"},
		{"not found", apperrors.NotFound("no such key"), http.StatusNotFound, "not_found", "no such key"},
		{"validation", apperrors.Validation("bad value"), http.StatusBadRequest, "validation", "bad value"},
		{"timeout", apperrors.New(apperrors.ErrCodeTimeout, "slow"), http.StatusGatewayTimeout, "timeout", "slow"},
		{"plain error hides text", errors.New("dial tcp 10.0.0.1"), http.StatusInternalServerError, "internal", "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.errCode, body["error"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestWriteError_NilErrUsesStatusText(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden"})

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Forbidden", body["message"])
}
