package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/gig-market/internal/domain/events"
	"github.com/maxaizer/gig-market/internal/domain/models"
	"github.com/maxaizer/gig-market/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// ActivityRecorder listens to lifecycle events and turns them into
// log lines and transition counters.
type ActivityRecorder struct {
	bus EventBus.Bus
}

func NewActivityRecorder(bus EventBus.Bus) (*ActivityRecorder, error) {

	r := &ActivityRecorder{bus: bus}

	if err := bus.Subscribe(events.JobAcceptedTopic, r.onJobAccepted); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.JobResolvedTopic, r.onJobResolved); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *ActivityRecorder) Stop() {
	_ = r.bus.Unsubscribe(events.JobAcceptedTopic, r.onJobAccepted)
	_ = r.bus.Unsubscribe(events.JobResolvedTopic, r.onJobResolved)
}

func (r *ActivityRecorder) onJobAccepted(event events.JobAccepted) {
	metrics.TransitionsCounter.WithLabelValues("accepted").Inc()
	log.Infof("job %v accepted by %v", event.Job.ID, event.AcceptedBy)
}

func (r *ActivityRecorder) onJobResolved(event events.JobResolved) {
	if event.Action == models.ActionDone {
		metrics.TransitionsCounter.WithLabelValues("completed").Inc()
		log.Infof("job %v completed by %v", event.Job.ID, event.Job.AcceptedBy)
		return
	}
	metrics.TransitionsCounter.WithLabelValues("cancelled").Inc()
	log.Infof("job %v cancelled, returned to open", event.Job.ID)
}
