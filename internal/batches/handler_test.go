package batches_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/internal/batches"
	"github.com/JaimeStill/screener/pkg/routes"
)

type mockSystem struct {
	listByJobFn func(ctx context.Context, jobID uuid.UUID) ([]batches.Batch, error)
	findFn      func(ctx context.Context, id uuid.UUID) (*batches.Batch, error)
	createFn    func(ctx context.Context, cmd batches.CreateCommand) (*batches.Batch, error)
	archiveFn   func(ctx context.Context, id uuid.UUID) (*batches.Batch, error)
}

func (m *mockSystem) Handler() *batches.Handler {
	return batches.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (m *mockSystem) ListByJob(ctx context.Context, jobID uuid.UUID) ([]batches.Batch, error) {
	return m.listByJobFn(ctx, jobID)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*batches.Batch, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd batches.CreateCommand) (*batches.Batch, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Archive(ctx context.Context, id uuid.UUID) (*batches.Batch, error) {
	return m.archiveFn(ctx, id)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

var (
	jobID   = uuid.MustParse("6f1c2a3e-0d1b-4c1e-9a55-1f2e3d4c5b6a")
	batchID = uuid.MustParse("0b7f5a9e-2c4d-4e8f-8a1b-3c5d7e9f1a2b")
)

func sampleBatch() batches.Batch {
	return batches.Batch{
		ID:        batchID,
		JobID:     jobID,
		Name:      "March intake",
		Status:    batches.StatusActive,
		CreatedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
}

func TestHandlerListByJob(t *testing.T) {
	var gotJob uuid.UUID
	sys := &mockSystem{
		listByJobFn: func(_ context.Context, id uuid.UUID) ([]batches.Batch, error) {
			gotJob = id
			return []batches.Batch{sampleBatch()}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/jobs/"+jobID.String()+"/batches", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotJob != jobID {
		t.Errorf("job id: got %s, want %s", gotJob, jobID)
	}

	var got []batches.Batch
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "March intake" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestHandlerCreate(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		createErr  error
		wantStatus int
	}{
		{"created", "/jobs/" + jobID.String() + "/batches", `{"name":"March intake"}`, nil, http.StatusCreated},
		{"unknown job", "/jobs/" + jobID.String() + "/batches", `{"name":"x"}`, batches.ErrJobNotFound, http.StatusNotFound},
		{"malformed job id", "/jobs/abc/batches", `{"name":"x"}`, nil, http.StatusBadRequest},
		{"malformed body", "/jobs/" + jobID.String() + "/batches", `{`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got batches.CreateCommand
			sys := &mockSystem{
				createFn: func(_ context.Context, cmd batches.CreateCommand) (*batches.Batch, error) {
					got = cmd
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					b := sampleBatch()
					return &b, nil
				},
			}

			rec := httptest.NewRecorder()
			setupMux(sys).ServeHTTP(rec, httptest.NewRequest("POST", tt.path, bytes.NewBufferString(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusCreated && got.JobID != jobID {
				t.Errorf("job id not bound from path: %s", got.JobID)
			}
		})
	}
}

func TestHandlerFind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"found", nil, http.StatusOK},
		{"not found", batches.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				findFn: func(context.Context, uuid.UUID) (*batches.Batch, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					b := sampleBatch()
					return &b, nil
				},
			}

			rec := httptest.NewRecorder()
			setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/batches/"+batchID.String(), nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandlerArchive(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"archived", nil, http.StatusOK},
		{"already archived", batches.ErrArchived, http.StatusConflict},
		{"not found", batches.ErrNotFound, http.StatusNotFound},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &mockSystem{
				archiveFn: func(context.Context, uuid.UUID) (*batches.Batch, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					b := sampleBatch()
					b.Status = batches.StatusArchived
					return &b, nil
				},
			}

			rec := httptest.NewRecorder()
			setupMux(sys).ServeHTTP(rec, httptest.NewRequest("POST", "/batches/"+batchID.String()+"/archive", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestBatchActive(t *testing.T) {
	b := sampleBatch()
	if !b.Active() {
		t.Error("active batch reported inactive")
	}
	b.Status = batches.StatusArchived
	if b.Active() {
		t.Error("archived batch reported active")
	}
}
