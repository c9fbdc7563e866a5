package candidates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/pkg/formatting"
	"github.com/JaimeStill/screener/pkg/pagination"
	"github.com/JaimeStill/screener/pkg/query"
	"github.com/JaimeStill/screener/pkg/repository"
	"github.com/JaimeStill/screener/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a candidate repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "candidates"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Candidate], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Email", "Summary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count candidates: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]Candidate, error) {
	q, args := query.
		NewBuilder(projection, batchSort).
		WhereEquals("BatchID", batchID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("query batch candidates: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCandidate)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Candidate, error) {
	if cmd.Score != nil && (*cmd.Score < 0 || *cmd.Score > 100) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScore, *cmd.Score)
	}
	if cmd.ID == uuid.Nil {
		cmd.ID = uuid.New()
	}
	if cmd.Status == "" {
		cmd.Status = StatusProcessing
	}
	if cmd.Evaluation == nil {
		cmd.Evaluation = []Evaluation{}
	}

	insert := `
		INSERT INTO candidates(
			id, batch_id, name, email, phone, skills, status, score, evaluation, summary,
			cv_file_key, cv_file_name, cv_file_size, cv_mime_type, cv_page_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	args := []any{
		cmd.ID,
		cmd.BatchID,
		cmd.Name,
		cmd.Email,
		cmd.Phone,
		repository.JSON[[]string]{V: formatting.DedupeFold(cmd.Skills)},
		cmd.Status,
		cmd.Score,
		repository.JSON[[]Evaluation]{V: cmd.Evaluation},
		cmd.Summary,
	}
	args = append(args, attachmentArgs(cmd.CV)...)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Candidate, error) {
		if err := repository.ExecExpectOne(ctx, tx, insert, args...); err != nil {
			return Candidate{}, err
		}
		q, qargs := query.NewBuilder(projection).BuildSingle("ID", cmd.ID)
		return repository.QueryOne(ctx, tx, q, qargs, scanCandidate)
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrBatchNotFound
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"candidate created",
		"id", c.ID,
		"batch_id", c.BatchID,
		"status", c.Status,
	)
	return &c, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Candidate, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var previous Status

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Candidate, error) {
		if err := tx.QueryRowContext(
			ctx,
			"SELECT status FROM candidates WHERE id = $1 FOR UPDATE",
			id,
		).Scan(&previous); err != nil {
			return Candidate{}, err
		}

		if err := CheckTransition(previous, status); err != nil {
			return Candidate{}, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE candidates SET status = $1 WHERE id = $2",
			status, id,
		); err != nil {
			return Candidate{}, err
		}

		q, args := query.NewBuilder(projection).BuildSingle("ID", id)
		return repository.QueryOne(ctx, tx, q, args, scanCandidate)
	})
	if err != nil {
		if errors.Is(err, ErrTerminalStatus) || errors.Is(err, ErrNotReviewable) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("candidate status updated", "id", id, "from", previous, "to", status)
	return &c, nil
}

func (r *repo) Attachment(ctx context.Context, id uuid.UUID) (*Download, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.CV == nil {
		return nil, ErrNoAttachment
	}

	body, err := r.storage.Download(ctx, c.CV.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoAttachment, c.CV.Key)
		}
		return nil, fmt.Errorf("download cv: %w", err)
	}

	return &Download{
		Body:        body,
		FileName:    c.CV.FileName,
		ContentType: c.CV.MimeType,
		Size:        c.CV.Size,
	}, nil
}

func attachmentArgs(a *Attachment) []any {
	if a == nil {
		return []any{nil, nil, nil, nil, nil}
	}
	return []any{a.Key, a.FileName, a.Size, a.MimeType, a.PageCount}
}
