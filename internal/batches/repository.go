package batches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/pkg/query"
	"github.com/JaimeStill/screener/pkg/repository"
	"github.com/JaimeStill/screener/pkg/validation"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a batch repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "batches"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]Batch, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("JobID", jobID).
		Build()

	batches, err := repository.QueryMany(ctx, r.db, q, args, scanBatch)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	return batches, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Batch, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBatch)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Batch, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO batches(id, job_id, name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, job_id, name, status, created_at`

	args := []any{uuid.New(), cmd.JobID, cmd.Name, StatusActive}

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Batch, error) {
		return repository.QueryOne(ctx, tx, q, args, scanBatch)
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrJobNotFound
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("batch created", "id", b.ID, "job_id", b.JobID, "name", b.Name)
	return &b, nil
}

func (r *repo) Archive(ctx context.Context, id uuid.UUID) (*Batch, error) {
	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Batch, error) {
		current, err := repository.QueryOne(
			ctx, tx,
			`SELECT id, job_id, name, status, created_at FROM batches WHERE id = $1 FOR UPDATE`,
			[]any{id},
			scanBatch,
		)
		if err != nil {
			return Batch{}, err
		}
		if !current.Active() {
			return Batch{}, ErrArchived
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE batches SET status = $1 WHERE id = $2",
			StatusArchived, id,
		); err != nil {
			return Batch{}, err
		}

		current.Status = StatusArchived
		return current, nil
	})
	if err != nil {
		if errors.Is(err, ErrArchived) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("batch archived", "id", id)
	return &b, nil
}
