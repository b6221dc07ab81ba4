package queue

import (
	"github.com/campfireagency/socialpress/internal/service"
)

type Queue struct {
	ps service.PublishService
}

func NewQueue(ps service.PublishService) *Queue {
	return &Queue{ps: ps}
}

const TaskTypePublishContent = "publish:content"

type PublishContentPayload struct {
	ContentID int64 `json:"content_id"`
}
