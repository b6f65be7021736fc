package repository

import (
	"github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AchievementRepository interface {
		CreateAchievement(db *gorm.DB, achievement *entity.Achievement) error
		CountAchievements(db *gorm.DB) (int64, error)
		FindAchievements(db *gorm.DB, activeOnly bool) ([]entity.Achievement, error)

		FindUserAchievements(db *gorm.DB, userID uuid.UUID) ([]entity.UserAchievement, error)
		FindUserAchievement(db *gorm.DB, userID, achievementID uuid.UUID) (*entity.UserAchievement, error)
		CompletedAchievementIDs(db *gorm.DB, userID uuid.UUID) (map[uuid.UUID]bool, error)
		SaveUserAchievement(db *gorm.DB, ua *entity.UserAchievement) error
	}

	achievementRepository struct {
		db *gorm.DB
	}
)

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *achievementRepository) CreateAchievement(db *gorm.DB, achievement *entity.Achievement) error {
	return r.conn(db).Create(achievement).Error
}

func (r *achievementRepository) CountAchievements(db *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(db).Model(&entity.Achievement{}).Count(&count).Error
	return count, err
}

func (r *achievementRepository) FindAchievements(db *gorm.DB, activeOnly bool) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	query := r.conn(db).Order("points ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepository) FindUserAchievements(db *gorm.DB, userID uuid.UUID) ([]entity.UserAchievement, error) {
	var items []entity.UserAchievement
	err := r.conn(db).Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&items).Error
	return items, err
}

func (r *achievementRepository) FindUserAchievement(db *gorm.DB, userID, achievementID uuid.UUID) (*entity.UserAchievement, error) {
	var ua entity.UserAchievement
	err := r.conn(db).Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&ua).Error
	if err != nil {
		return nil, err
	}
	return &ua, nil
}

func (r *achievementRepository) CompletedAchievementIDs(db *gorm.DB, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.conn(db).Model(&entity.UserAchievement{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *achievementRepository) SaveUserAchievement(db *gorm.DB, ua *entity.UserAchievement) error {
	return r.conn(db).Omit("Achievement").Save(ua).Error
}
