package candidates_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/screener/internal/candidates"
	"github.com/JaimeStill/screener/pkg/pagination"
)

var lockStatus = regexp.QuoteMeta("SELECT status FROM candidates WHERE id = $1 FOR UPDATE")

func newRepo(t *testing.T) (candidates.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sys := candidates.New(db, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	return sys, mock
}

func TestRepositoryUpdateStatusRefused(t *testing.T) {
	tests := []struct {
		name    string
		stored  candidates.Status
		target  candidates.Status
		wantErr error
	}{
		{"already accepted", candidates.StatusAccepted, candidates.StatusRejected, candidates.ErrTerminalStatus},
		{"accepted again", candidates.StatusAccepted, candidates.StatusAccepted, candidates.ErrTerminalStatus},
		{"already rejected", candidates.StatusRejected, candidates.StatusAccepted, candidates.ErrTerminalStatus},
		{"legacy done row", candidates.StatusDone, candidates.StatusAccepted, candidates.ErrNotReviewable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock := newRepo(t)
			id := uuid.New()

			mock.ExpectBegin()
			mock.ExpectQuery(lockStatus).
				WithArgs(id).
				WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(string(tt.stored)))
			mock.ExpectRollback()

			got, err := sys.UpdateStatus(context.Background(), id, tt.target)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
			// No UPDATE was expected, so meeting expectations proves the stored
			// status was left as it was.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepositoryUpdateStatusMissing(t *testing.T) {
	sys, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(lockStatus).WithArgs(id).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := sys.UpdateStatus(context.Background(), id, candidates.StatusAccepted)
	assert.ErrorIs(t, err, candidates.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateStatusRejectsUnassignable(t *testing.T) {
	sys, mock := newRepo(t)

	_, err := sys.UpdateStatus(context.Background(), uuid.New(), candidates.StatusProcessing)
	assert.ErrorIs(t, err, candidates.ErrInvalidStatus)
	assert.NoError(t, mock.ExpectationsWereMet(), "no transaction opened")
}

func TestRepositoryUpdateStatusAccepts(t *testing.T) {
	sys, mock := newRepo(t)
	id, batchID, jobID := uuid.New(), uuid.New(), uuid.New()
	submitted := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(lockStatus).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("failed"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE candidates SET status = $1 WHERE id = $2")).
		WithArgs(candidates.StatusAccepted, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT c\.id, .* FROM public\.candidates c JOIN public\.batches b .* WHERE c\.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "batch_id", "name", "email", "phone", "skills", "status", "score",
			"evaluation", "summary", "submission_date", "cv_file_key", "cv_file_name",
			"cv_file_size", "cv_mime_type", "cv_page_count", "job_id",
		}).AddRow(
			id.String(), batchID.String(), "Ana Lopez", "ana@x.io", nil, `["Go"]`, "accepted", 0,
			`[]`, nil, submitted, nil, nil, nil, nil, nil, jobID.String(),
		))
	mock.ExpectCommit()

	got, err := sys.UpdateStatus(context.Background(), id, candidates.StatusAccepted)
	require.NoError(t, err)

	assert.Equal(t, candidates.StatusAccepted, got.Status)
	assert.Equal(t, jobID, got.JobID)
	assert.Equal(t, []string{"Go"}, got.Skills)
	require.NotNil(t, got.Score)
	assert.Equal(t, 0, *got.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}
