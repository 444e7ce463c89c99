package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueLedgerPurge(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	info, err := client.EnqueueLedgerPurge(context.Background(), 14)
	require.NoError(t, err)
	assert.Equal(t, TaskLedgerPurge, info.Type)
	assert.Equal(t, QueueDefault, info.Queue)

	var payload LedgerPurgePayload
	require.NoError(t, json.Unmarshal(info.Payload, &payload))
	assert.Equal(t, 14, payload.RetentionDays)
	assert.NotEmpty(t, payload.RunID)
}
