package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/maxaizer/gig-market/internal/domain/events"
	"github.com/maxaizer/gig-market/internal/domain/models"
	"github.com/maxaizer/gig-market/internal/repositories"
	"github.com/samber/lo"
)

type jobRepository interface {
	Add(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Get(ctx context.Context, filter repositories.JobFilter) ([]models.Job, error)
	GetByAccepter(ctx context.Context, email string) ([]models.Job, error)
	GetByPoster(ctx context.Context, email string) ([]models.Job, error)
	Search(ctx context.Context, query string) ([]models.Job, error)
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	Remove(ctx context.Context, id string) (int64, error)
	AcceptIfOpen(ctx context.Context, id, email, name string) (int64, error)
	CompleteIfAccepted(ctx context.Context, id string) (int64, error)
	CancelIfAccepted(ctx context.Context, id string) (int64, error)
}

type jobReader interface {
	GetLatest(ctx context.Context, limit int) ([]models.Job, error)
	GetByCategory(ctx context.Context, category string) ([]models.Job, error)
}

const latestJobsLimit = 6

type JobService struct {
	bus    EventBus.Bus
	jobs   jobRepository
	reader jobReader
}

func NewJobService(bus EventBus.Bus, jobs jobRepository, reader jobReader) *JobService {
	return &JobService{bus: bus, jobs: jobs, reader: reader}
}

// List returns jobs for the public board: entries missing a title or a
// category never left the draft stage and are filtered out.
func (s *JobService) List(ctx context.Context, email string, sortDescending bool) ([]models.Job, error) {

	jobs, err := s.jobs.Get(ctx, repositories.JobFilter{Email: email, SortDescending: sortDescending})
	if err != nil {
		return nil, err
	}

	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		return job.IsListable()
	}), nil
}

func (s *JobService) GetByID(ctx context.Context, id string) (*models.Job, error) {

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, models.ErrJobNotFound
	}
	return job, nil
}

func (s *JobService) Latest(ctx context.Context) ([]models.Job, error) {
	return s.reader.GetLatest(ctx, latestJobsLimit)
}

func (s *JobService) ByAccepter(ctx context.Context, email string) ([]models.Job, error) {
	return s.jobs.GetByAccepter(ctx, email)
}

func (s *JobService) ByPoster(ctx context.Context, email string) ([]models.Job, error) {
	return s.jobs.GetByPoster(ctx, email)
}

func (s *JobService) ByCategory(ctx context.Context, category string) ([]models.Job, error) {
	return s.reader.GetByCategory(ctx, category)
}

func (s *JobService) Search(ctx context.Context, query string) ([]models.Job, error) {
	return s.jobs.Search(ctx, query)
}

func (s *JobService) Create(ctx context.Context, job models.Job) (string, error) {

	job.ID = uuid.NewString()
	job.Status = models.StatusOpen
	job.CreatedAt = time.Now().UTC()
	job.UpdatedAt = job.CreatedAt
	job.AcceptedBy = ""
	job.AcceptedByName = ""
	job.CompletedAt = nil

	if err := s.jobs.Add(ctx, &job); err != nil {
		return "", err
	}
	return job.ID, nil
}

func (s *JobService) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	return s.jobs.Update(ctx, id, fields)
}

// Delete is idempotent: removing an unknown id reports zero affected
// rows and no error.
func (s *JobService) Delete(ctx context.Context, id string) (int64, error) {
	return s.jobs.Remove(ctx, id)
}

// Accept claims an open job for the given accepter. The guard checks run
// on a pre-read only to give a precise error; the claim itself is a single
// conditional update, so concurrent accepters race on the store and all
// but one observe zero affected rows.
func (s *JobService) Accept(ctx context.Context, id, accepterEmail, accepterName string) (*models.Job, error) {

	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = job.CanBeAcceptedBy(accepterEmail); err != nil {
		return nil, err
	}

	if accepterName == "" {
		accepterName = models.UnknownAccepterName
	}

	affected, err := s.jobs.AcceptIfOpen(ctx, id, accepterEmail, accepterName)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, models.ErrAlreadyAccepted
	}

	refreshed, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.JobAcceptedTopic, events.JobAccepted{Job: *refreshed, AcceptedBy: accepterEmail})
	return refreshed, nil
}

// Resolve finishes or re-opens an accepted job.
func (s *JobService) Resolve(ctx context.Context, id string, action models.Action) (*models.Job, error) {

	var affected int64
	var err error

	switch action {
	case models.ActionDone:
		affected, err = s.jobs.CompleteIfAccepted(ctx, id)
	case models.ActionCancel:
		affected, err = s.jobs.CancelIfAccepted(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		job, err := s.jobs.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if job == nil {
			return nil, models.ErrJobNotFound
		}
		return nil, models.ErrNotAccepted
	}

	refreshed, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.JobResolvedTopic, events.JobResolved{Job: *refreshed, Action: action})
	return refreshed, nil
}
