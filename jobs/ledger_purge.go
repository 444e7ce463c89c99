package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	jobmetrics "github.com/smauel/access/internal/jobs"
)

// DefaultRetentionDays is how long expired ledger rows are kept before a
// purge run may remove them.
const DefaultRetentionDays = 30

// ExpiredDeleter removes ledger rows whose expiry predates a cutoff and
// reports how many were removed.
type ExpiredDeleter interface {
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// LedgerPurgeJob deletes grant and assignment rows that expired longer ago
// than the retention window. Rows inside the window stay queryable, so
// resolution behavior is unchanged: the purge only touches rows every
// lookup already filters out.
type LedgerPurgeJob struct {
	Grants      ExpiredDeleter
	Assignments ExpiredDeleter
	Logger      *slog.Logger
	Metrics     *jobmetrics.Metrics
	clock       func() time.Time
}

// NewLedgerPurgeJob initialises the purge handler.
func NewLedgerPurgeJob(grants, assignments ExpiredDeleter, logger *slog.Logger, metrics *jobmetrics.Metrics) *LedgerPurgeJob {
	return &LedgerPurgeJob{
		Grants:      grants,
		Assignments: assignments,
		Logger:      logger,
		Metrics:     metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes a purge run.
func (j *LedgerPurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Grants == nil || j.Assignments == nil {
		return errors.New("ledger purge: handler not configured")
	}
	var payload LedgerPurgePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.RetentionDays <= 0 {
		payload.RetentionDays = DefaultRetentionDays
	}

	start := j.now()
	cutoff := start.AddDate(0, 0, -payload.RetentionDays)
	tracker := j.metrics().Track(TaskLedgerPurge)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(
		slog.String("run_id", payload.RunID),
		slog.Int("retention_days", payload.RetentionDays),
		slog.Time("cutoff", cutoff),
	)
	logger.Info("starting ledger purge")

	var grantsPurged, assignmentsPurged int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := j.Grants.DeleteExpiredBefore(gctx, cutoff)
		if err != nil {
			return err
		}
		grantsPurged = n
		return nil
	})
	g.Go(func() error {
		n, err := j.Assignments.DeleteExpiredBefore(gctx, cutoff)
		if err != nil {
			return err
		}
		assignmentsPurged = n
		return nil
	})
	if err := g.Wait(); err != nil {
		resultErr = err
		logger.Error("ledger purge failed", slog.Any("error", err))
		return resultErr
	}

	j.metrics().AddPurged("grants", grantsPurged)
	j.metrics().AddPurged("assignments", assignmentsPurged)

	logger.Info("completed ledger purge",
		slog.Int64("grants_purged", grantsPurged),
		slog.Int64("assignments_purged", assignmentsPurged),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

func (j *LedgerPurgeJob) now() time.Time {
	if j != nil && j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

func (j *LedgerPurgeJob) logger() *slog.Logger {
	if j != nil && j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *LedgerPurgeJob) metrics() *jobmetrics.Metrics {
	if j != nil && j.Metrics != nil {
		return j.Metrics
	}
	return jobmetrics.NewMetrics(nil)
}
