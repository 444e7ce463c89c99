package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerPurge removes long-expired ledger rows.
	TaskLedgerPurge = "ledger:purge"
)

// LedgerPurgePayload carries the retention window for a purge run. The run
// ID correlates log lines of a single execution.
type LedgerPurgePayload struct {
	RetentionDays int    `json:"retention_days"`
	RunID         string `json:"run_id"`
}

// NewLedgerPurgeTask constructs an Asynq task for a ledger purge run.
func NewLedgerPurgeTask(retentionDays int) (*asynq.Task, error) {
	payload := LedgerPurgePayload{
		RetentionDays: retentionDays,
		RunID:         uuid.NewString(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerPurge, body, asynq.Queue(QueueDefault)), nil
}
