package candidates_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/screener/internal/candidates"
)

var allStatuses = []candidates.Status{
	candidates.StatusProcessing,
	candidates.StatusFailed,
	candidates.StatusAccepted,
	candidates.StatusRejected,
	candidates.StatusDone,
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]candidates.Status]bool{
		{candidates.StatusProcessing, candidates.StatusAccepted}: true,
		{candidates.StatusProcessing, candidates.StatusRejected}: true,
		{candidates.StatusFailed, candidates.StatusAccepted}:     true,
		{candidates.StatusFailed, candidates.StatusRejected}:     true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]candidates.Status{from, to}]
			assert.Equal(t, want, candidates.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		from    candidates.Status
		to      candidates.Status
		wantErr error
	}{
		{candidates.StatusProcessing, candidates.StatusAccepted, nil},
		{candidates.StatusFailed, candidates.StatusRejected, nil},
		{candidates.StatusAccepted, candidates.StatusRejected, candidates.ErrTerminalStatus},
		{candidates.StatusRejected, candidates.StatusRejected, candidates.ErrTerminalStatus},
		{candidates.StatusDone, candidates.StatusAccepted, candidates.ErrNotReviewable},
		{candidates.Status("archived"), candidates.StatusAccepted, candidates.ErrNotReviewable},
		{candidates.StatusProcessing, candidates.StatusFailed, candidates.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := candidates.CheckTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.False(t, candidates.StatusDone.Terminal(), "done is not a decision")
	assert.False(t, candidates.StatusDone.Reviewable())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, candidates.StatusAccepted.Terminal())
	assert.True(t, candidates.StatusRejected.Terminal())
	assert.False(t, candidates.StatusProcessing.Terminal())
	assert.False(t, candidates.StatusFailed.Terminal())
}

func TestTerminalStatusesNeverLeave(t *testing.T) {
	for _, from := range allStatuses {
		if !from.Terminal() {
			continue
		}
		for _, to := range allStatuses {
			assert.False(t, candidates.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestParseReviewStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    candidates.Status
		wantErr bool
	}{
		{"accepted", candidates.StatusAccepted, false},
		{" Rejected ", candidates.StatusRejected, false},
		{"processing", "", true},
		{"failed", "", true},
		{"done", "", true},
		{"", "", true},
		{"approved", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := candidates.ParseReviewStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, candidates.ErrInvalidStatus))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{candidates.ErrNotFound, http.StatusNotFound},
		{candidates.ErrBatchNotFound, http.StatusNotFound},
		{candidates.ErrNoAttachment, http.StatusNotFound},
		{candidates.ErrDuplicate, http.StatusConflict},
		{candidates.ErrTerminalStatus, http.StatusConflict},
		{candidates.ErrNotReviewable, http.StatusConflict},
		{candidates.ErrInvalidStatus, http.StatusBadRequest},
		{candidates.ErrInvalidScore, http.StatusBadRequest},
		{errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, candidates.MapHTTPStatus(tt.err))
		})
	}
}
