package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// HandlePublishContentTask runs one publish attempt. A failure result is
// terminal for the queue: retrying automatically is unsafe without an
// operator looking at the recorded error first, so the handler returns nil
// either way and the content record carries the outcome.
func (q *Queue) HandlePublishContentTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishContentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	result := q.ps.PublishContentItem(ctx, payload.ContentID)
	if !result.Success {
		slog.Info("publish attempt failed",
			"content_id", payload.ContentID,
			"platform", result.Platform,
			"error", result.ErrorMessage)
		return nil
	}

	return nil
}
