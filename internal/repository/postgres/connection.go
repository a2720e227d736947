package postgres

import (
	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Ranking{},
		&domain.RankingItem{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Ranking: NewRankingRepository(db),
		Item:    NewItemRepository(db),
		User:    NewUserRepository(db),
		Session: NewSessionRepository(db),
	}
}
