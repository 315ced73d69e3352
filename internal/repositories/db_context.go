package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/gig-market/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.User{})
	if err != nil {
		return fmt.Errorf("failed to migrate User entity: %w", err)
	}

	return nil
}

func (c *DbContext) Ping() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Ping()
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
