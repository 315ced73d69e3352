package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/gig-market/internal/domain/events"
	"github.com/maxaizer/gig-market/internal/domain/models"
	"github.com/maxaizer/gig-market/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) Add(ctx context.Context, job *models.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *mockJobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*models.Job)
	return job, args.Error(1)
}

func (m *mockJobs) Get(ctx context.Context, filter repositories.JobFilter) ([]models.Job, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *mockJobs) GetByAccepter(ctx context.Context, email string) ([]models.Job, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *mockJobs) GetByPoster(ctx context.Context, email string) ([]models.Job, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *mockJobs) Search(ctx context.Context, query string) ([]models.Job, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *mockJobs) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) Remove(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) AcceptIfOpen(ctx context.Context, id, email, name string) (int64, error) {
	args := m.Called(ctx, id, email, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) CompleteIfAccepted(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJobs) CancelIfAccepted(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockReader struct {
	mock.Mock
}

func (m *mockReader) GetLatest(ctx context.Context, limit int) ([]models.Job, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *mockReader) GetByCategory(ctx context.Context, category string) ([]models.Job, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]models.Job), args.Error(1)
}

func newJobService(jobs *mockJobs) *JobService {
	return NewJobService(EventBus.New(), jobs, &mockReader{})
}

func Test_Accept_WhenJobNotFound_ReturnsError(t *testing.T) {

	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := newJobService(jobs).Accept(context.Background(), "missing", "b@x.com", "Bo")

	assert.ErrorIs(t, err, models.ErrJobNotFound)
	jobs.AssertNotCalled(t, "AcceptIfOpen", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_Accept_WhenSelfAccept_NeverMutates(t *testing.T) {

	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "job1").
		Return(&models.Job{ID: "job1", UserEmail: "a@x.com", Status: models.StatusOpen}, nil)

	_, err := newJobService(jobs).Accept(context.Background(), "job1", "a@x.com", "Ann")

	assert.ErrorIs(t, err, models.ErrSelfAccept)
	jobs.AssertNotCalled(t, "AcceptIfOpen", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_Accept_WhenAlreadyAccepted_ReturnsError(t *testing.T) {

	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "job1").
		Return(&models.Job{ID: "job1", UserEmail: "a@x.com", Status: models.StatusAccepted, AcceptedBy: "c@x.com"}, nil)

	_, err := newJobService(jobs).Accept(context.Background(), "job1", "b@x.com", "Bo")

	assert.ErrorIs(t, err, models.ErrAlreadyAccepted)
}

func Test_Accept_WhenConditionalUpdateMissed_ReturnsAlreadyAccepted(t *testing.T) {

	// job looked open on the pre-read but a concurrent caller claimed it
	// before the conditional update landed
	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "job1").
		Return(&models.Job{ID: "job1", UserEmail: "a@x.com", Status: models.StatusOpen}, nil)
	jobs.On("AcceptIfOpen", mock.Anything, "job1", "b@x.com", "Bo").Return(int64(0), nil)

	_, err := newJobService(jobs).Accept(context.Background(), "job1", "b@x.com", "Bo")

	assert.ErrorIs(t, err, models.ErrAlreadyAccepted)
}

func Test_Accept_Success_PublishesEventAndDefaultsName(t *testing.T) {

	open := &models.Job{ID: "job1", UserEmail: "a@x.com", Status: models.StatusOpen}
	accepted := &models.Job{ID: "job1", UserEmail: "a@x.com", Status: models.StatusAccepted,
		AcceptedBy: "b@x.com", AcceptedByName: models.UnknownAccepterName}

	jobs := &mockJobs{}
	jobs.On("GetByID", mock.Anything, "job1").Return(open, nil).Once()
	jobs.On("AcceptIfOpen", mock.Anything, "job1", "b@x.com", models.UnknownAccepterName).
		Return(int64(1), nil).Once()
	jobs.On("GetByID", mock.Anything, "job1").Return(accepted, nil).Once()

	bus := EventBus.New()
	published := make(chan events.JobAccepted, 1)
	require.NoError(t, bus.Subscribe(events.JobAcceptedTopic, func(e events.JobAccepted) {
		published <- e
	}))

	service := NewJobService(bus, jobs, &mockReader{})
	job, err := service.Accept(context.Background(), "job1", "b@x.com", "")

	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, job.Status)
	assert.Equal(t, "b@x.com", job.AcceptedBy)
	assert.Equal(t, models.UnknownAccepterName, job.AcceptedByName)

	select {
	case event := <-published:
		assert.Equal(t, "b@x.com", event.AcceptedBy)
	case <-time.After(time.Second):
		t.Fatal("expected JobAccepted event")
	}
	jobs.AssertExpectations(t)
}

func Test_Resolve_Done_Success(t *testing.T) {

	now := time.Now().UTC()
	completed := &models.Job{ID: "job1", Status: models.StatusCompleted, CompletedAt: &now}

	jobs := &mockJobs{}
	jobs.On("CompleteIfAccepted", mock.Anything, "job1").Return(int64(1), nil)
	jobs.On("GetByID", mock.Anything, "job1").Return(completed, nil)

	job, err := newJobService(jobs).Resolve(context.Background(), "job1", models.ActionDone)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
}

func Test_Resolve_WhenJobAbsent_ReturnsNotFound(t *testing.T) {

	jobs := &mockJobs{}
	jobs.On("CancelIfAccepted", mock.Anything, "missing").Return(int64(0), nil)
	jobs.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, err := newJobService(jobs).Resolve(context.Background(), "missing", models.ActionCancel)

	assert.ErrorIs(t, err, models.ErrJobNotFound)
}

func Test_Resolve_WhenJobNotAccepted_ReturnsError(t *testing.T) {

	jobs := &mockJobs{}
	jobs.On("CompleteIfAccepted", mock.Anything, "job1").Return(int64(0), nil)
	jobs.On("GetByID", mock.Anything, "job1").
		Return(&models.Job{ID: "job1", Status: models.StatusOpen}, nil)

	_, err := newJobService(jobs).Resolve(context.Background(), "job1", models.ActionDone)

	assert.ErrorIs(t, err, models.ErrNotAccepted)
}

func Test_List_FiltersOutDraftEntries(t *testing.T) {

	jobs := &mockJobs{}
	jobs.On("Get", mock.Anything, mock.Anything).Return([]models.Job{
		{ID: "1", Title: "Logo design", Category: "Design"},
		{ID: "2", Title: "No category"},
		{ID: "3", Category: "No title"},
	}, nil)

	listed, err := newJobService(jobs).List(context.Background(), "", false)

	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "1", listed[0].ID)
}

func Test_Create_AssignsServerSideFields(t *testing.T) {

	var stored *models.Job
	jobs := &mockJobs{}
	jobs.On("Add", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Job)
		}).Return(nil)

	id, err := newJobService(jobs).Create(context.Background(), models.Job{
		Title:     "Logo design",
		Category:  "Design",
		UserEmail: "a@x.com",
		Status:    models.StatusCompleted, // client cannot pick a status
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, id, stored.ID)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, models.StatusOpen, stored.Status)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Nil(t, stored.CompletedAt)
}
