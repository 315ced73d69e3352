package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/maxaizer/gig-market/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// jobColumns is the set of columns a partial update may touch. The
// identifier and the service-owned timestamps are deliberately absent.
var jobColumns = map[string]bool{
	"title":            true,
	"category":         true,
	"summary":          true,
	"tags":             true,
	"price_min":        true,
	"price_max":        true,
	"user_email":       true,
	"status":           true,
	"accepted_by":      true,
	"accepted_by_name": true,
}

type JobFilter struct {
	Email          string
	SortDescending bool
}

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *models.Job) error {
	return repo.db.WithContext(ctx).Create(job).Error
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {

	var job models.Job
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get job by id")
	}
	return &job, nil
}

func (repo *Jobs) Get(ctx context.Context, filter JobFilter) ([]models.Job, error) {

	query := repo.db.WithContext(ctx).Model(&models.Job{})
	if filter.Email != "" {
		query = query.Where("user_email = ?", filter.Email)
	}

	order := "created_at ASC"
	if filter.SortDescending {
		order = "created_at DESC"
	}

	var jobs []models.Job
	if err := query.Order(order).Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get jobs")
	}
	return jobs, nil
}

func (repo *Jobs) GetLatest(ctx context.Context, limit int) ([]models.Job, error) {

	var jobs []models.Job
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get latest jobs")
	}
	return jobs, nil
}

func (repo *Jobs) GetByAccepter(ctx context.Context, email string) ([]models.Job, error) {

	var jobs []models.Job
	if err := repo.db.WithContext(ctx).
		Where("accepted_by = ? AND status IN ?", email,
			[]models.Status{models.StatusAccepted, models.StatusCompleted}).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get jobs by accepter")
	}
	return jobs, nil
}

func (repo *Jobs) GetByPoster(ctx context.Context, email string) ([]models.Job, error) {

	var jobs []models.Job
	if err := repo.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get jobs by poster")
	}
	return jobs, nil
}

func (repo *Jobs) GetByCategory(ctx context.Context, category string) ([]models.Job, error) {

	var jobs []models.Job
	pattern := "%" + strings.ToLower(category) + "%"
	if err := repo.db.WithContext(ctx).
		Where("LOWER(category) LIKE ?", pattern).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get jobs by category")
	}
	return jobs, nil
}

func (repo *Jobs) Search(ctx context.Context, query string) ([]models.Job, error) {

	var jobs []models.Job
	pattern := "%" + strings.ToLower(query) + "%"
	if err := repo.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(category) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search jobs")
	}
	return jobs, nil
}

// Update merges the given fields into the stored job and stamps
// updated_at. Keys that are not job columns are silently dropped.
func (repo *Jobs) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {

	updates := map[string]any{}
	for key, value := range fields {
		if jobColumns[key] {
			updates[key] = value
		}
	}
	updates["updated_at"] = time.Now().UTC()

	res := repo.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, errors.Wrap(res.Error, "failed to update job")
}

func (repo *Jobs) Remove(ctx context.Context, id string) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	return res.RowsAffected, errors.Wrap(res.Error, "failed to remove job")
}

// AcceptIfOpen claims the job with a single conditional update. Zero
// affected rows means the job was not open anymore (or never existed),
// so at most one of any number of concurrent callers can win.
func (repo *Jobs) AcceptIfOpen(ctx context.Context, id, email, name string) (int64, error) {
	res := repo.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND status = ?", id, models.StatusOpen).
		Updates(map[string]any{
			"status":           models.StatusAccepted,
			"accepted_by":      email,
			"accepted_by_name": name,
			"updated_at":       time.Now().UTC(),
		})
	return res.RowsAffected, errors.Wrap(res.Error, "failed to accept job")
}

func (repo *Jobs) CompleteIfAccepted(ctx context.Context, id string) (int64, error) {
	now := time.Now().UTC()
	res := repo.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND status = ?", id, models.StatusAccepted).
		Updates(map[string]any{
			"status":       models.StatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		})
	return res.RowsAffected, errors.Wrap(res.Error, "failed to complete job")
}

func (repo *Jobs) CancelIfAccepted(ctx context.Context, id string) (int64, error) {
	res := repo.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND status = ?", id, models.StatusAccepted).
		Updates(map[string]any{
			"status":           models.StatusOpen,
			"accepted_by":      "",
			"accepted_by_name": "",
			"updated_at":       time.Now().UTC(),
		})
	return res.RowsAffected, errors.Wrap(res.Error, "failed to cancel job")
}

func (repo *Jobs) RemoveOldCompleted(ctx context.Context, completedBefore time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).
		Delete(&models.Job{}, "status = ? AND completed_at < ?", models.StatusCompleted, completedBefore)
	return res.RowsAffected, errors.Wrap(res.Error, "failed to remove old completed jobs")
}
