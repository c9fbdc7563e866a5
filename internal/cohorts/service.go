package cohorts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/internal/batches"
	"github.com/JaimeStill/screener/internal/candidates"
	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/internal/jobs"
	"github.com/JaimeStill/screener/pkg/kmeans"
)

// CandidateLister loads a batch's candidates in one query.
type CandidateLister interface {
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]candidates.Candidate, error)
}

// BatchFinder resolves a batch.
type BatchFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*batches.Batch, error)
}

// JobFinder resolves a job.
type JobFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*jobs.Job, error)
}

type service struct {
	candidates CandidateLister
	batches    BatchFinder
	jobs       JobFinder
	cfg        config.ClusteringConfig
	logger     *slog.Logger
}

// New creates the cohort clustering system.
func New(
	cands CandidateLister,
	batchFinder BatchFinder,
	jobFinder JobFinder,
	cfg config.ClusteringConfig,
	logger *slog.Logger,
) System {
	return &service{
		candidates: cands,
		batches:    batchFinder,
		jobs:       jobFinder,
		cfg:        cfg,
		logger:     logger.With("system", "cohorts"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Cluster(ctx context.Context, batchID uuid.UUID, opts Options) (*Result, error) {
	if opts.K < 0 {
		return nil, fmt.Errorf("%w: k must not be negative", ErrInvalidOptions)
	}
	if opts.Features == "" {
		opts.Features = Feature(s.cfg.Features)
	}
	if _, err := ParseFeature(string(opts.Features), ""); err != nil {
		return nil, err
	}

	b, err := s.batches.Find(ctx, batchID)
	if err != nil {
		if errors.Is(err, batches.ErrNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("find batch: %w", err)
	}

	if opts.K == 0 {
		k, err := s.jobClusters(ctx, b.JobID)
		if err != nil {
			return nil, err
		}
		opts.K = k
	}

	cands, err := s.candidates.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	dims, points := Vectors(cands, opts.Features)

	engine := kmeans.NewSeeded(s.seed())
	run, err := engine.Run(points, opts.K, s.cfg.MaxIterations)
	if err != nil {
		return nil, err
	}

	result := summarize(batchID, opts, dims, cands, points, run)

	s.logger.Info(
		"batch clustered",
		"batch_id", batchID,
		"k", opts.K,
		"features", opts.Features,
		"candidates", len(cands),
		"iterations", run.Iterations,
		"converged", run.Converged,
		"reseeds", run.Reseeds,
	)
	return result, nil
}

func (s *service) jobClusters(ctx context.Context, jobID uuid.UUID) (int, error) {
	j, err := s.jobs.Find(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("find job: %w", err)
	}

	if j.Clusters > 0 {
		return j.Clusters, nil
	}
	return s.cfg.DefaultK, nil
}

func (s *service) seed() uint64 {
	if s.cfg.Seed != 0 {
		return s.cfg.Seed
	}
	return rand.Uint64()
}

func summarize(
	batchID uuid.UUID,
	opts Options,
	dims []string,
	cands []candidates.Candidate,
	points [][]float64,
	run *kmeans.Result,
) *Result {
	result := &Result{
		BatchID:     batchID,
		K:           opts.K,
		Features:    opts.Features,
		Dimensions:  dims,
		Iterations:  run.Iterations,
		Converged:   run.Converged,
		Assignments: make([]Assignment, len(cands)),
		Cohorts:     []Cohort{},
	}

	groups := 0
	for _, a := range run.Assignments {
		groups = max(groups, a+1)
	}

	summaries := make([]Cohort, groups)
	for i := range summaries {
		summaries[i] = Cohort{
			Index:    i,
			Centroid: make([]float64, len(dims)),
			Members:  []uuid.UUID{},
		}
	}

	scoreSums := make([]int, groups)
	for i, c := range cands {
		idx := run.Assignments[i]
		result.Assignments[i] = Assignment{
			CandidateID: c.ID,
			Name:        c.Name,
			Score:       c.Score,
			Cohort:      idx,
		}

		score := 0
		if c.Score != nil {
			score = *c.Score
		}

		sum := &summaries[idx]
		if sum.Size == 0 || score < sum.MinScore {
			sum.MinScore = score
		}
		if sum.Size == 0 || score > sum.MaxScore {
			sum.MaxScore = score
		}
		sum.Size++
		sum.Members = append(sum.Members, c.ID)
		scoreSums[idx] += score
		for d, v := range points[i] {
			sum.Centroid[d] += v
		}
	}

	for i := range summaries {
		sum := &summaries[i]
		if sum.Size == 0 {
			continue
		}
		sum.MeanScore = float64(scoreSums[i]) / float64(sum.Size)
		for d := range sum.Centroid {
			sum.Centroid[d] /= float64(sum.Size)
		}
		result.Cohorts = append(result.Cohorts, *sum)
	}

	return result
}
