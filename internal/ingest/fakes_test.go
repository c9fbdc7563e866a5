package ingest_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/internal/batches"
	"github.com/JaimeStill/screener/internal/candidates"
	"github.com/JaimeStill/screener/internal/cohorts"
	"github.com/JaimeStill/screener/internal/ingest"
	"github.com/JaimeStill/screener/internal/jobs"
	"github.com/JaimeStill/screener/internal/scoring"
	"github.com/JaimeStill/screener/pkg/lifecycle"
	"github.com/JaimeStill/screener/pkg/metrics"
	"github.com/JaimeStill/screener/pkg/storage"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

type scorerFunc func(ctx context.Context, cvText, jobContext string) (*scoring.Result, error)

func (f scorerFunc) Score(ctx context.Context, cvText, jobContext string) (*scoring.Result, error) {
	return f(ctx, cvText, jobContext)
}

type fakeCreator struct {
	mu   sync.Mutex
	cmds []candidates.CreateCommand
	fail func(cmd candidates.CreateCommand) error
}

func (c *fakeCreator) Create(_ context.Context, cmd candidates.CreateCommand) (*candidates.Candidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fail != nil {
		if err := c.fail(cmd); err != nil {
			return nil, err
		}
	}
	c.cmds = append(c.cmds, cmd)

	return &candidates.Candidate{
		ID:             cmd.ID,
		BatchID:        cmd.BatchID,
		Name:           cmd.Name,
		Email:          cmd.Email,
		Phone:          cmd.Phone,
		Skills:         cmd.Skills,
		Status:         cmd.Status,
		Score:          cmd.Score,
		Evaluation:     cmd.Evaluation,
		Summary:        cmd.Summary,
		SubmissionDate: time.Now(),
		CV:             cmd.CV,
	}, nil
}

func (c *fakeCreator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cmds)
}

type fakeStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	types   map[string]string
	putErr  error
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStore) Start(*lifecycle.Coordinator) error { return nil }

func (s *fakeStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.blobs[key] = data
	s.types[key] = contentType
	return nil
}

func (s *fakeStore) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.blobs, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeClusterer struct {
	mu    sync.Mutex
	calls []cohorts.Options
	err   error
}

func (c *fakeClusterer) Cluster(_ context.Context, batchID uuid.UUID, opts cohorts.Options) (*cohorts.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, opts)
	if c.err != nil {
		return nil, c.err
	}
	return &cohorts.Result{BatchID: batchID, K: opts.K}, nil
}

var (
	batchID = uuid.MustParse("0b7f5a9e-2c4d-4e8f-8a1b-3c5d7e9f1a2b")
	jobID   = uuid.MustParse("6f1c2a3e-0d1b-4c1e-9a55-1f2e3d4c5b6a")
)

func activeBatch() *batches.Batch {
	return &batches.Batch{ID: batchID, JobID: jobID, Name: "March", Status: batches.StatusActive}
}

func backendJob() *jobs.Job {
	return &jobs.Job{
		ID:             jobID,
		Title:          "Backend Engineer",
		Description:    "Go services",
		Clusters:       3,
		RequiredSkills: []string{"Go", "SQL"},
	}
}

func okResult(score int) *scoring.Result {
	return &scoring.Result{
		Score:   score,
		Summary: "Fits well.",
		Evaluation: []scoring.Evaluation{
			{Criteria: "Technical Skills", Score: score, Description: "ok"},
		},
		Skills: []string{"Go"},
	}
}

type harness struct {
	creator   *fakeCreator
	store     *fakeStore
	clusterer *fakeClusterer
	metrics   metrics.System
	pipeline  *ingest.Pipeline
}

func newHarness(scorer ingest.Scorer, opts ingest.Options) *harness {
	h := &harness{
		creator:   &fakeCreator{},
		store:     newFakeStore(),
		clusterer: &fakeClusterer{},
		metrics:   metrics.NewNop(),
	}
	h.pipeline = ingest.NewPipeline(scorer, h.creator, h.store, h.clusterer, opts, h.metrics, discard())
	return h
}

var errScoring = &scoring.Failure{Kind: scoring.KindRemote, Err: errors.New("unavailable")}
