package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Subject - Mata pelajaran yang bisa dipilih user
type Subject struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string                      `gorm:"uniqueIndex;size:100;not null" json:"name"` // e.g. "Mathematics"
	Description      string                      `gorm:"type:text" json:"description"`
	Icon             string                      `gorm:"size:50" json:"icon"`
	GradeLevels      datatypes.JSONSlice[string] `json:"grade_levels"`      // ["elementary","middle","high","college"]
	DifficultyLevels datatypes.JSONSlice[string] `json:"difficulty_levels"` // ["easy","medium","hard"]
	IsActive         bool                        `gorm:"not null;index" json:"is_active"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (Subject) TableName() string {
	return "subjects"
}

func (s *Subject) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// PromptTemplate - Template instruksi untuk solver. Statistik di-update oleh engine,
// konten oleh admin. Tidak pernah dihapus selama masih direferensikan submission.
type PromptTemplate struct {
	ID                    uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID             uuid.UUID                   `gorm:"type:uuid;not null;index" json:"subject_id"`
	Title                 string                      `gorm:"size:200;not null" json:"title"`
	TemplateText          string                      `gorm:"type:text;not null" json:"template_text"` // {{input}}, {{grade_level}}, ...
	InputType             string                      `gorm:"size:20;not null;index" json:"input_type"` // text, image, voice, any
	Difficulty            string                      `gorm:"size:20;not null;index" json:"difficulty"`
	GradeLevels           datatypes.JSONSlice[string] `json:"grade_levels"`
	Keywords              datatypes.JSONSlice[string] `json:"keywords"`
	RequiresStepByStep    bool                        `gorm:"not null" json:"requires_step_by_step"`
	IncludesExamples      bool                        `gorm:"not null" json:"includes_examples"`
	EncouragesExploration bool                        `gorm:"not null" json:"encourages_exploration"`
	MaxTokens             int                         `gorm:"not null" json:"max_tokens"`
	Temperature           float64                     `gorm:"not null" json:"temperature"`
	UsageCount            int64                       `gorm:"not null" json:"usage_count"`
	AverageRating         float64                     `gorm:"not null" json:"average_rating"`
	SuccessRate           float64                     `gorm:"not null" json:"success_rate"`        // percent, 0-100
	EffectivenessScore    float64                     `gorm:"not null;index" json:"effectiveness_score"` // derived ranking metric
	Version               int                         `gorm:"not null" json:"version"`
	IsActive              bool                        `gorm:"not null;index" json:"is_active"`
	CreatedBy             string                      `gorm:"size:100" json:"created_by"`
	CreatedAt             time.Time                   `json:"created_at"`
	UpdatedAt             time.Time                   `json:"updated_at"`
}

func (PromptTemplate) TableName() string {
	return "prompt_templates"
}

func (p *PromptTemplate) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
