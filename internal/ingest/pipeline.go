// Package ingest scores submitted candidates and persists them into a batch.
// Each submission is processed independently: a failed score or a failed
// upload degrades that candidate alone and never aborts its siblings.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/screener/internal/batches"
	"github.com/JaimeStill/screener/internal/candidates"
	"github.com/JaimeStill/screener/internal/cohorts"
	"github.com/JaimeStill/screener/internal/jobs"
	"github.com/JaimeStill/screener/internal/scoring"
	"github.com/JaimeStill/screener/pkg/metrics"
	"github.com/JaimeStill/screener/pkg/storage"
)

// FailedSummary is recorded for candidates whose scoring call failed.
const FailedSummary = "Analysis Failed"

// Scorer produces a scoring result for CV text.
type Scorer interface {
	Score(ctx context.Context, cvText, jobContext string) (*scoring.Result, error)
}

// CandidateCreator persists an assembled candidate.
type CandidateCreator interface {
	Create(ctx context.Context, cmd candidates.CreateCommand) (*candidates.Candidate, error)
}

// Clusterer recomputes a batch's cohorts.
type Clusterer interface {
	Cluster(ctx context.Context, batchID uuid.UUID, opts cohorts.Options) (*cohorts.Result, error)
}

// Options configures a Pipeline.
type Options struct {
	// Workers bounds how many submissions are processed at once.
	Workers int
	// ScoreTimeout bounds each scoring call.
	ScoreTimeout      time.Duration
	PlaceholderDomain string
}

// Pipeline turns submissions into persisted candidates.
type Pipeline struct {
	scorer     Scorer
	candidates CandidateCreator
	storage    storage.System
	cohorts    Clusterer
	opts       Options
	logger     *slog.Logger
	metrics    *collectors
}

// NewPipeline creates a Pipeline. cohorts may be nil to skip re-clustering.
func NewPipeline(
	scorer Scorer,
	creator CandidateCreator,
	store storage.System,
	clusterer Clusterer,
	opts Options,
	m metrics.System,
	logger *slog.Logger,
) *Pipeline {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.PlaceholderDomain == "" {
		opts.PlaceholderDomain = DefaultPlaceholderDomain
	}

	return &Pipeline{
		scorer:     scorer,
		candidates: creator,
		storage:    store,
		cohorts:    clusterer,
		opts:       opts,
		logger:     logger.With("system", "ingest"),
		metrics:    newCollectors(m),
	}
}

// Ingest processes every submission into the batch and then recomputes the
// batch's cohorts. Request-level problems are returned as errors; problems
// with individual submissions are recorded in the report.
func (p *Pipeline) Ingest(ctx context.Context, batch *batches.Batch, job *jobs.Job, subs []Submission) (*Report, error) {
	if err := p.check(batch, job, subs); err != nil {
		return nil, err
	}
	return p.run(ctx, batch, job, subs, nil), nil
}

func (p *Pipeline) check(batch *batches.Batch, job *jobs.Job, subs []Submission) error {
	if batch == nil {
		return ErrBatchNotFound
	}
	if job == nil {
		return ErrJobNotFound
	}
	if !batch.Active() {
		return ErrBatchArchived
	}
	return Request{Candidates: subs}.Validate()
}

func (p *Pipeline) run(
	ctx context.Context,
	batch *batches.Batch,
	job *jobs.Job,
	subs []Submission,
	progress func(Outcome),
) *Report {
	start := time.Now()
	outcomes := make([]Outcome, len(subs))

	var g errgroup.Group
	g.SetLimit(p.opts.Workers)

	for i, sub := range subs {
		g.Go(func() error {
			outcomes[i] = p.process(ctx, batch, job, i, sub)
			if progress != nil {
				progress(outcomes[i])
			}
			return nil
		})
	}
	g.Wait()

	report := &Report{
		BatchID:  batch.ID,
		Outcomes: outcomes,
	}

	for _, o := range outcomes {
		switch {
		case o.Candidate == nil:
			report.Errors++
		case o.Candidate.Status == candidates.StatusFailed:
			report.Failed++
		default:
			report.Scored++
		}
	}

	if p.cohorts != nil {
		result, err := p.cohorts.Cluster(ctx, batch.ID, cohorts.Options{K: job.Clusters})
		if err != nil {
			p.logger.Warn("cohort recompute failed", "batch_id", batch.ID, "error", err)
		} else {
			report.Cohorts = result
		}
	}

	p.logger.Info(
		"batch ingested",
		"batch_id", batch.ID,
		"submitted", len(subs),
		"scored", report.Scored,
		"failed", report.Failed,
		"errors", report.Errors,
		"duration", time.Since(start),
	)

	return report
}

func (p *Pipeline) process(
	ctx context.Context,
	batch *batches.Batch,
	job *jobs.Job,
	index int,
	sub Submission,
) Outcome {
	id := uuid.New()
	logger := p.logger.With("batch_id", batch.ID, "candidate_id", id, "index", index)

	cmd := candidates.CreateCommand{
		ID:      id,
		BatchID: batch.ID,
	}

	var extracted Identity

	result, err := p.score(ctx, CandidateText(sub, job), job.Context())
	if err != nil {
		logger.Warn("candidate scoring failed", "kind", scoring.KindOf(err), "error", err)
		zero := 0
		cmd.Status = candidates.StatusFailed
		cmd.Score = &zero
		cmd.Summary = FailedSummary
		cmd.Evaluation = []candidates.Evaluation{}
		cmd.Skills = []string{}
	} else {
		score := result.Score
		cmd.Status = candidates.StatusProcessing
		cmd.Score = &score
		cmd.Summary = result.Summary
		cmd.Skills = result.Skills
		cmd.Evaluation = make([]candidates.Evaluation, len(result.Evaluation))
		for i, e := range result.Evaluation {
			cmd.Evaluation[i] = candidates.Evaluation(e)
		}
		extracted = Identity{
			Name:  deref(result.FullName),
			Email: deref(result.Email),
			Phone: deref(result.Phone),
		}
	}

	merged := MergeIdentity(
		extracted,
		Identity{Name: sub.Name, Email: sub.Email, Phone: sub.Phone},
		p.opts.PlaceholderDomain,
	)
	cmd.Name = merged.Name
	cmd.Email = merged.Email
	if merged.Phone != "" {
		cmd.Phone = &merged.Phone
	}

	attachment, err := p.storeAttachment(ctx, batch.ID, id, sub, logger)
	if err != nil {
		p.metrics.attachmentFailures.Inc()
		logger.Warn("cv attachment not stored", "error", err)
	}
	cmd.CV = attachment

	c, err := p.candidates.Create(ctx, cmd)
	if err != nil {
		p.metrics.persistFailures.Inc()
		logger.Error("candidate not persisted", "error", err)
		p.discardAttachment(attachment, logger)
		return Outcome{Index: index, Error: err.Error()}
	}

	p.metrics.candidates.WithLabelValues(string(c.Status)).Inc()
	return Outcome{Index: index, Candidate: c}
}

func (p *Pipeline) score(ctx context.Context, text, jobContext string) (*scoring.Result, error) {
	if p.opts.ScoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.ScoreTimeout)
		defer cancel()
	}
	return p.scorer.Score(ctx, text, jobContext)
}

func (p *Pipeline) discardAttachment(a *candidates.Attachment, logger *slog.Logger) {
	if a == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := p.storage.Delete(ctx, a.Key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Warn("orphaned cv blob not removed", "key", a.Key, "error", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
