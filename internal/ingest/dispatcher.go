package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/screener/internal/batches"
	"github.com/JaimeStill/screener/internal/jobs"
	"github.com/JaimeStill/screener/pkg/lifecycle"
)

// TaskState is the lifecycle state of a background ingestion.
type TaskState string

const (
	TaskPending  TaskState = "pending"
	TaskRunning  TaskState = "running"
	TaskComplete TaskState = "complete"
)

// Task is a snapshot of a background ingestion.
type Task struct {
	ID         uuid.UUID  `json:"id"`
	BatchID    uuid.UUID  `json:"batch_id"`
	State      TaskState  `json:"state"`
	Total      int        `json:"total"`
	Completed  int        `json:"completed"`
	Report     *Report    `json:"report,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

type work struct {
	task  *Task
	batch *batches.Batch
	job   *jobs.Job
	subs  []Submission
}

// Dispatcher runs ingestions in the background on a fixed set of workers
// fed by a bounded queue.
type Dispatcher struct {
	pipeline  *Pipeline
	workers   int
	retention time.Duration
	logger    *slog.Logger

	queue chan *work
	wg    sync.WaitGroup

	mu      sync.Mutex
	tasks   map[uuid.UUID]*Task
	stopped bool

	now func() time.Time
}

// NewDispatcher creates a Dispatcher. Call Start before Submit.
func NewDispatcher(p *Pipeline, workers, queueSize int, retention time.Duration, logger *slog.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	return &Dispatcher{
		pipeline:  p,
		workers:   workers,
		retention: retention,
		logger:    logger.With("system", "ingest-dispatcher"),
		queue:     make(chan *work, queueSize),
		tasks:     make(map[uuid.UUID]*Task),
		now:       time.Now,
	}
}

// Start launches the workers. They stop taking new work when the coordinator
// context is cancelled, and shutdown waits for in-flight tasks to finish.
func (d *Dispatcher) Start(lc *lifecycle.Coordinator) error {
	ctx := lc.Context()

	for range d.workers {
		d.wg.Add(1)
		go d.loop(ctx)
	}

	lc.OnShutdown(func() {
		<-ctx.Done()
		d.stop()
		d.wg.Wait()
		d.logger.Info("ingest dispatcher stopped")
	})

	d.logger.Info("ingest dispatcher started", "workers", d.workers, "queue", cap(d.queue))
	return nil
}

// Submit validates the request and queues it. The returned snapshot is pending.
func (d *Dispatcher) Submit(batch *batches.Batch, job *jobs.Job, subs []Submission) (Task, error) {
	if err := d.pipeline.check(batch, job, subs); err != nil {
		return Task{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return Task{}, ErrStopped
	}

	d.prune()

	task := &Task{
		ID:        uuid.New(),
		BatchID:   batch.ID,
		State:     TaskPending,
		Total:     len(subs),
		CreatedAt: d.now(),
	}

	select {
	case d.queue <- &work{task: task, batch: batch, job: job, subs: subs}:
	default:
		d.pipeline.metrics.tasks.WithLabelValues("rejected").Inc()
		return Task{}, ErrQueueFull
	}

	d.tasks[task.ID] = task
	d.pipeline.metrics.tasks.WithLabelValues("submitted").Inc()
	d.pipeline.metrics.queueDepth.Set(float64(len(d.queue)))

	d.logger.Info("ingestion queued", "task_id", task.ID, "batch_id", batch.ID, "candidates", task.Total)
	return *task, nil
}

// Task returns a snapshot of the task with the given id.
func (d *Dispatcher) Task(id uuid.UUID) (Task, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return *t, nil
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case w, ok := <-d.queue:
			if !ok {
				return
			}
			d.execute(ctx, w)
		}
	}
}

func (d *Dispatcher) execute(ctx context.Context, w *work) {
	d.mu.Lock()
	started := d.now()
	w.task.State = TaskRunning
	w.task.StartedAt = &started
	d.pipeline.metrics.queueDepth.Set(float64(len(d.queue)))
	d.mu.Unlock()

	// Ingestion outlives the request that queued it but not the process.
	report := d.pipeline.run(context.WithoutCancel(ctx), w.batch, w.job, w.subs, func(Outcome) {
		d.mu.Lock()
		w.task.Completed++
		d.mu.Unlock()
	})

	d.mu.Lock()
	finished := d.now()
	w.task.State = TaskComplete
	w.task.FinishedAt = &finished
	w.task.Report = report
	d.mu.Unlock()

	d.pipeline.metrics.tasks.WithLabelValues("completed").Inc()
	d.logger.Info("ingestion complete", "task_id", w.task.ID, "batch_id", w.batch.ID, "duration", finished.Sub(started))
}

func (d *Dispatcher) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
}

// prune drops finished tasks older than the retention window. Callers hold mu.
func (d *Dispatcher) prune() {
	if d.retention <= 0 {
		return
	}
	cutoff := d.now().Add(-d.retention)
	for id, t := range d.tasks {
		if t.FinishedAt != nil && t.FinishedAt.Before(cutoff) {
			delete(d.tasks, id)
		}
	}
}
