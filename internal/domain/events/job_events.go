package events

import (
	"github.com/maxaizer/gig-market/internal/domain/models"
)

var (
	JobAcceptedTopic = "JobAcceptedEvent"
	JobResolvedTopic = "JobResolvedEvent"
)

type JobAccepted struct {
	Job        models.Job
	AcceptedBy string
}

type JobResolved struct {
	Job    models.Job
	Action models.Action
}
