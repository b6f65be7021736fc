package repository

import (
	"errors"

	"github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ProgressRepository interface {
		// Profile operations
		FindProfile(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error)
		UpsertProfile(db *gorm.DB, profile *entity.Profile) error

		// Ledger operations
		EnsureProgress(db *gorm.DB, userID uuid.UUID) error
		LockProgress(db *gorm.DB, userID uuid.UUID) (*entity.UserProgress, error)
		FindProgress(db *gorm.DB, userID uuid.UUID) (*entity.UserProgress, error)
		SaveProgress(db *gorm.DB, progress *entity.UserProgress) error

		// Daily activity operations
		RecordDailyActivity(db *gorm.DB, userID uuid.UUID, date string, points, minutes int) (*entity.DailyActivity, error)
		FindActiveDatesSince(db *gorm.DB, userID uuid.UUID, fromDate string) ([]string, error)
		FindRecentActivity(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.DailyActivity, error)
		MaxProblemsInOneDay(db *gorm.DB, userID uuid.UUID) (int, error)
	}

	progressRepository struct {
		db *gorm.DB
	}
)

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.db
	}
	return db
}

// Profile operations
func (r *progressRepository) FindProfile(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.conn(db).Where("id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *progressRepository) UpsertProfile(db *gorm.DB, profile *entity.Profile) error {
	return r.conn(db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "grade_level", "updated_at"}),
	}).Create(profile).Error
}

// EnsureProgress - Insert baris ledger kosong kalau belum ada. Aman dipanggil paralel.
func (r *progressRepository) EnsureProgress(db *gorm.DB, userID uuid.UUID) error {
	progress := entity.UserProgress{
		UserID: userID,
		Level:  1,
	}
	return r.conn(db).Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error
}

func (r *progressRepository) LockProgress(db *gorm.DB, userID uuid.UUID) (*entity.UserProgress, error) {
	var progress entity.UserProgress
	err := r.conn(db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) FindProgress(db *gorm.DB, userID uuid.UUID) (*entity.UserProgress, error) {
	var progress entity.UserProgress
	err := r.conn(db).Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) SaveProgress(db *gorm.DB, progress *entity.UserProgress) error {
	return r.conn(db).Save(progress).Error
}

// RecordDailyActivity - Tambah 1 soal ke log hari itu. Caller harus sudah memegang lock ledger user.
func (r *progressRepository) RecordDailyActivity(db *gorm.DB, userID uuid.UUID, date string, points, minutes int) (*entity.DailyActivity, error) {
	conn := r.conn(db)

	var activity entity.DailyActivity
	err := conn.Where("user_id = ? AND activity_date = ?", userID, date).First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		activity = entity.DailyActivity{
			UserID:         userID,
			ActivityDate:   date,
			ProblemsSolved: 1,
			PointsEarned:   points,
			MinutesStudied: minutes,
		}
		if err := conn.Create(&activity).Error; err != nil {
			return nil, err
		}
		return &activity, nil
	}
	if err != nil {
		return nil, err
	}

	activity.ProblemsSolved++
	activity.PointsEarned += points
	activity.MinutesStudied += minutes
	if err := conn.Save(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *progressRepository) FindActiveDatesSince(db *gorm.DB, userID uuid.UUID, fromDate string) ([]string, error) {
	var dates []string
	err := r.conn(db).Model(&entity.DailyActivity{}).
		Where("user_id = ? AND activity_date >= ? AND problems_solved > 0", userID, fromDate).
		Order("activity_date DESC").
		Pluck("activity_date", &dates).Error
	return dates, err
}

func (r *progressRepository) FindRecentActivity(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.DailyActivity, error) {
	var activities []entity.DailyActivity
	query := r.conn(db).Where("user_id = ?", userID).Order("activity_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&activities).Error
	return activities, err
}

func (r *progressRepository) MaxProblemsInOneDay(db *gorm.DB, userID uuid.UUID) (int, error) {
	var maxSolved int
	err := r.conn(db).Model(&entity.DailyActivity{}).
		Select("COALESCE(MAX(problems_solved), 0)").
		Where("user_id = ?", userID).
		Scan(&maxSolved).Error
	return maxSolved, err
}
