package repository

import (
	"github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// TemplateOutcomes - Agregat submission yang mereferensikan satu template
	TemplateOutcomes struct {
		Total         int64
		Completed     int64
		Rated         int64
		AverageRating *float64
	}

	SubmissionFilter struct {
		UserID uuid.UUID
		Status string
		Limit  int
		Offset int
	}

	SubmissionRepository interface {
		Create(db *gorm.DB, submission *entity.Submission) error
		Save(db *gorm.DB, submission *entity.Submission) error
		FindByID(db *gorm.DB, id uuid.UUID) (*entity.Submission, error)
		LockByID(db *gorm.DB, id uuid.UUID) (*entity.Submission, error)
		FindByUser(db *gorm.DB, filter SubmissionFilter) ([]entity.Submission, int64, error)

		// Aggregates
		TemplateOutcomes(db *gorm.DB, templateID uuid.UUID) (TemplateOutcomes, error)
		CountRatedByUser(db *gorm.DB, userID uuid.UUID, rating int) (int64, error)
	}

	submissionRepository struct {
		db *gorm.DB
	}
)

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *submissionRepository) Create(db *gorm.DB, submission *entity.Submission) error {
	return r.conn(db).Create(submission).Error
}

func (r *submissionRepository) Save(db *gorm.DB, submission *entity.Submission) error {
	return r.conn(db).Save(submission).Error
}

func (r *submissionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Submission, error) {
	var submission entity.Submission
	err := r.conn(db).Where("id = ?", id).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) LockByID(db *gorm.DB, id uuid.UUID) (*entity.Submission, error) {
	var submission entity.Submission
	err := r.conn(db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindByUser(db *gorm.DB, filter SubmissionFilter) ([]entity.Submission, int64, error) {
	query := r.conn(db).Model(&entity.Submission{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []entity.Submission
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	err := query.Order("created_at DESC").Find(&submissions).Error
	return submissions, total, err
}

func (r *submissionRepository) TemplateOutcomes(db *gorm.DB, templateID uuid.UUID) (TemplateOutcomes, error) {
	var out TemplateOutcomes
	err := r.conn(db).Model(&entity.Submission{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed, "+
				"COUNT(rating) AS rated, "+
				"AVG(rating) AS average_rating",
			"completed",
		).
		Where("prompt_template_id = ?", templateID).
		Scan(&out).Error
	return out, err
}

// CountRatedByUser - Hanya submission yang sudah selesai (completed / archived) yang dihitung
func (r *submissionRepository) CountRatedByUser(db *gorm.DB, userID uuid.UUID, rating int) (int64, error) {
	var count int64
	err := r.conn(db).Model(&entity.Submission{}).
		Where("user_id = ? AND rating = ?", userID, rating).
		Where("status IN ?", []string{"completed", "archived"}).
		Count(&count).Error
	return count, err
}
