package entity

import "time"

type CreateSubmissionRequest struct {
	Subject      string   `json:"subject" validate:"required,max=100"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	InputType    string   `json:"input_type" validate:"required,oneof=text image voice"`
	GradeLevel   string   `json:"grade_level" validate:"omitempty,max=30"`
	Tags         []string `json:"tags" validate:"omitempty,dive,max=50"`
	InputText    string   `json:"input_text" validate:"required_if=InputType text"`
	InputURL     string   `json:"input_url" validate:"omitempty,url,max=500"`
	BypassPrompt bool     `json:"bypass_prompt"`
}

type SolutionStep struct {
	Order   int    `json:"order"`
	Title   string `json:"title"`
	Content string `json:"content" validate:"required"`
}

// Hasil dari solver eksternal
type CompleteSubmissionRequest struct {
	Solution         string         `json:"solution" validate:"required"`
	Explanation      string         `json:"explanation"`
	Steps            []SolutionStep `json:"steps" validate:"omitempty,dive"`
	Confidence       float64        `json:"confidence" validate:"omitempty,min=0,max=1"`
	AIModel          string         `json:"ai_model" validate:"omitempty,max=100"`
	ProcessingTimeMs int64          `json:"processing_time_ms" validate:"omitempty,min=0"`
}

type FailSubmissionRequest struct {
	Message string `json:"message" validate:"required"`
}

type RateSubmissionRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}

type ListSubmissionsRequest struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=pending processing completed error archived"`
	Limit  int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" json:"offset" validate:"omitempty,min=0"`
}

type SubmissionResponse struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	Subject          string         `json:"subject"`
	Difficulty       string         `json:"difficulty"`
	InputType        string         `json:"input_type"`
	GradeLevel       string         `json:"grade_level,omitempty"`
	Tags             []string       `json:"tags"`
	InputText        string         `json:"input_text,omitempty"`
	InputURL         string         `json:"input_url,omitempty"`
	PromptTemplateID string         `json:"prompt_template_id,omitempty"`
	ResolvedPrompt   string         `json:"resolved_prompt,omitempty"`
	Solution         string         `json:"solution,omitempty"`
	Explanation      string         `json:"explanation,omitempty"`
	Steps            []SolutionStep `json:"steps"`
	Confidence       float64        `json:"confidence"`
	AIModel          string         `json:"ai_model,omitempty"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
	Status           string         `json:"status"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	Rating           *int           `json:"rating,omitempty"`
	Feedback         string         `json:"feedback,omitempty"`
	PointsAwarded    int            `json:"points_awarded"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}
