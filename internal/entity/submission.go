package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SolutionStep - Satu langkah penyelesaian dari solver
type SolutionStep struct {
	Order   int    `json:"order"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Submission - Soal yang dikirim user beserta hasil solver
type Submission struct {
	ID               uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                         `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject          string                            `gorm:"size:100;not null;index" json:"subject"`
	Difficulty       string                            `gorm:"size:20;not null" json:"difficulty"`
	InputType        string                            `gorm:"size:20;not null" json:"input_type"` // text, image, voice
	GradeLevel       string                            `gorm:"size:30" json:"grade_level"`
	Tags             datatypes.JSONSlice[string]       `json:"tags"`
	InputText        string                            `gorm:"type:text" json:"input_text"`
	InputURL         string                            `gorm:"size:500" json:"input_url"` // external content reference
	PromptTemplateID *uuid.UUID                        `gorm:"type:uuid;index" json:"prompt_template_id,omitempty"`
	ResolvedPrompt   string                            `gorm:"type:text" json:"resolved_prompt"`
	Solution         string                            `gorm:"type:text" json:"solution"`
	Explanation      string                            `gorm:"type:text" json:"explanation"`
	Steps            datatypes.JSONSlice[SolutionStep] `json:"steps"`
	Confidence       float64                           `gorm:"not null" json:"confidence"`
	AIModel          string                            `gorm:"size:100" json:"ai_model"`
	ProcessingTimeMs int64                             `gorm:"not null" json:"processing_time_ms"`
	Status           string                            `gorm:"size:20;not null;index" json:"status"` // pending, processing, completed, error, archived
	ErrorMessage     string                            `gorm:"type:text" json:"error_message,omitempty"`
	Rating           *int                              `json:"rating,omitempty"` // 1-5
	Feedback         string                            `gorm:"type:text" json:"feedback,omitempty"`
	PointsAwarded    int                               `gorm:"not null" json:"points_awarded"`
	CompletedAt      *time.Time                        `json:"completed_at,omitempty"`
	CreditedAt       *time.Time                        `json:"credited_at,omitempty"` // set once when the ledger counted it
	CreatedAt        time.Time                         `json:"created_at"`
	UpdatedAt        time.Time                         `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
