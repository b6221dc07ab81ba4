package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// EnqueueContent schedules a publish task. The task id is derived from the
// content id, so double-enqueued triggers for the same item collapse in the
// queue before the orchestrator ever runs.
func EnqueueContent(client *asynq.Client, payload PublishContentPayload, delay time.Duration) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishContent, taskPayload)

	_, err = client.Enqueue(task,
		asynq.ProcessIn(delay),
		asynq.TaskID(fmt.Sprintf("%s:%d", TaskTypePublishContent, payload.ContentID)),
		asynq.MaxRetry(0),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			slog.Info("publish task already enqueued", "content_id", payload.ContentID)
			return nil
		}
		return err
	}

	slog.Info("publish task enqueued", "content_id", payload.ContentID, "delay", delay)
	return nil
}
