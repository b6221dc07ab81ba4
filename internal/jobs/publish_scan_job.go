package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/campfireagency/socialpress/internal/queue"
	"github.com/campfireagency/socialpress/internal/repository"
	"github.com/hibiken/asynq"
)

// PublishScanJob periodically sweeps the content calendar for scheduled items
// whose time has come and hands them to the publish queue. The queue's
// per-item task id keeps repeated sweeps from double-enqueueing.
type PublishScanJob struct {
	cr     repository.ContentRepository
	client *asynq.Client
}

func NewPublishScanJob(cr repository.ContentRepository, client *asynq.Client) *PublishScanJob {
	return &PublishScanJob{cr: cr, client: client}
}

func (j *PublishScanJob) ScanDueContent() {
	ctx := context.Background()

	items, err := j.cr.ListDue(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, item := range items {
		err := queue.EnqueueContent(j.client, queue.PublishContentPayload{ContentID: item.ID}, 0)
		if err != nil {
			slog.Info("unable to enqueue due content", "content_id", item.ID, "error", err)
		}
	}
}
