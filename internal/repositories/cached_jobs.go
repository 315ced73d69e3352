package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/maxaizer/gig-market/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type jobReadRepository interface {
	GetLatest(ctx context.Context, limit int) ([]models.Job, error)
	GetByCategory(ctx context.Context, category string) ([]models.Job, error)
}

// CachedJobs shields the two hottest read queries behind a short TTL.
// Mutations do not invalidate entries, so listings may lag by up to
// the TTL; acceptable for landing-page style reads.
type CachedJobs struct {
	repo  jobReadRepository
	cache *gocache.Cache
}

func NewCachedJobs(repo jobReadRepository) *CachedJobs {
	return &CachedJobs{repo: repo, cache: gocache.New(30*time.Second, time.Minute)}
}

func (c *CachedJobs) GetLatest(ctx context.Context, limit int) ([]models.Job, error) {

	key := "latest"
	if value, found := c.cache.Get(key); found {
		return value.([]models.Job), nil
	}

	jobs, err := c.repo.GetLatest(ctx, limit)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, jobs, gocache.DefaultExpiration)
	return jobs, nil
}

func (c *CachedJobs) GetByCategory(ctx context.Context, category string) ([]models.Job, error) {

	key := "category:" + strings.ToLower(category)
	if value, found := c.cache.Get(key); found {
		return value.([]models.Job), nil
	}

	jobs, err := c.repo.GetByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, jobs, gocache.DefaultExpiration)
	return jobs, nil
}
