package repository

import (
	"github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	TemplateFilter struct {
		Subject    string
		Difficulty string
		InputType  string
		ActiveOnly bool
	}

	TemplateStats struct {
		AverageRating      float64
		SuccessRate        float64
		EffectivenessScore float64
	}

	CatalogRepository interface {
		// Subject operations
		CreateSubject(db *gorm.DB, subject *entity.Subject) error
		FindSubjects(db *gorm.DB, activeOnly bool) ([]entity.Subject, error)
		FindSubjectByName(db *gorm.DB, name string) (*entity.Subject, error)
		CountSubjects(db *gorm.DB) (int64, error)

		// Template operations
		CreateTemplate(db *gorm.DB, template *entity.PromptTemplate) error
		SaveTemplate(db *gorm.DB, template *entity.PromptTemplate) error
		FindTemplateByID(db *gorm.DB, id uuid.UUID) (*entity.PromptTemplate, error)
		LockTemplateByID(db *gorm.DB, id uuid.UUID) (*entity.PromptTemplate, error)
		FindTemplates(db *gorm.DB, filter TemplateFilter) ([]entity.PromptTemplate, error)
		FindSelectableTemplates(db *gorm.DB, subject string, inputType string) ([]entity.PromptTemplate, error)
		SetTemplateActive(db *gorm.DB, id uuid.UUID, active bool) error

		// Statistics, only written by the engine
		IncrementTemplateUsage(db *gorm.DB, id uuid.UUID) error
		UpdateTemplateStats(db *gorm.DB, id uuid.UUID, stats TemplateStats) error
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.db
	}
	return db
}

// Subject operations
func (r *catalogRepository) CreateSubject(db *gorm.DB, subject *entity.Subject) error {
	return r.conn(db).Create(subject).Error
}

func (r *catalogRepository) FindSubjects(db *gorm.DB, activeOnly bool) ([]entity.Subject, error) {
	var subjects []entity.Subject
	query := r.conn(db).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&subjects).Error
	return subjects, err
}

func (r *catalogRepository) FindSubjectByName(db *gorm.DB, name string) (*entity.Subject, error) {
	var subject entity.Subject
	err := r.conn(db).Where("name = ?", name).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *catalogRepository) CountSubjects(db *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(db).Model(&entity.Subject{}).Count(&count).Error
	return count, err
}

// Template operations
func (r *catalogRepository) CreateTemplate(db *gorm.DB, template *entity.PromptTemplate) error {
	return r.conn(db).Create(template).Error
}

func (r *catalogRepository) SaveTemplate(db *gorm.DB, template *entity.PromptTemplate) error {
	return r.conn(db).Save(template).Error
}

func (r *catalogRepository) FindTemplateByID(db *gorm.DB, id uuid.UUID) (*entity.PromptTemplate, error) {
	var template entity.PromptTemplate
	err := r.conn(db).Where("id = ?", id).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// LockTemplateByID - SELECT ... FOR UPDATE, harus dipanggil di dalam transaksi
func (r *catalogRepository) LockTemplateByID(db *gorm.DB, id uuid.UUID) (*entity.PromptTemplate, error) {
	var template entity.PromptTemplate
	err := r.conn(db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *catalogRepository) FindTemplates(db *gorm.DB, filter TemplateFilter) ([]entity.PromptTemplate, error) {
	var templates []entity.PromptTemplate
	query := r.conn(db).Model(&entity.PromptTemplate{}).
		Joins("JOIN subjects ON subjects.id = prompt_templates.subject_id")
	if filter.Subject != "" {
		query = query.Where("subjects.name = ?", filter.Subject)
	}
	if filter.Difficulty != "" {
		query = query.Where("prompt_templates.difficulty = ?", filter.Difficulty)
	}
	if filter.InputType != "" {
		query = query.Where("prompt_templates.input_type = ?", filter.InputType)
	}
	if filter.ActiveOnly {
		query = query.Where("prompt_templates.is_active = ?", true)
	}
	err := query.Order("prompt_templates.title ASC").Find(&templates).Error
	return templates, err
}

// FindSelectableTemplates - Hard filter untuk prompt selection: aktif, subject cocok,
// input type sama persis atau wildcard "any"
func (r *catalogRepository) FindSelectableTemplates(db *gorm.DB, subject string, inputType string) ([]entity.PromptTemplate, error) {
	var templates []entity.PromptTemplate
	err := r.conn(db).Model(&entity.PromptTemplate{}).
		Joins("JOIN subjects ON subjects.id = prompt_templates.subject_id").
		Where("subjects.name = ?", subject).
		Where("prompt_templates.is_active = ?", true).
		Where("prompt_templates.input_type IN ?", []string{inputType, "any"}).
		Find(&templates).Error
	return templates, err
}

func (r *catalogRepository) SetTemplateActive(db *gorm.DB, id uuid.UUID, active bool) error {
	res := r.conn(db).Model(&entity.PromptTemplate{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepository) IncrementTemplateUsage(db *gorm.DB, id uuid.UUID) error {
	return r.conn(db).Model(&entity.PromptTemplate{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
}

func (r *catalogRepository) UpdateTemplateStats(db *gorm.DB, id uuid.UUID, stats TemplateStats) error {
	return r.conn(db).Model(&entity.PromptTemplate{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"average_rating":      stats.AverageRating,
			"success_rate":        stats.SuccessRate,
			"effectiveness_score": stats.EffectivenessScore,
		}).Error
}
