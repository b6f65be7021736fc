package entity

type SubjectResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Icon             string   `json:"icon"`
	GradeLevels      []string `json:"grade_levels"`
	DifficultyLevels []string `json:"difficulty_levels"`
	IsActive         bool     `json:"is_active"`
}

type PromptTemplateResponse struct {
	ID                    string   `json:"id"`
	SubjectID             string   `json:"subject_id"`
	Title                 string   `json:"title"`
	TemplateText          string   `json:"template_text"`
	InputType             string   `json:"input_type"`
	Difficulty            string   `json:"difficulty"`
	GradeLevels           []string `json:"grade_levels"`
	Keywords              []string `json:"keywords"`
	RequiresStepByStep    bool     `json:"requires_step_by_step"`
	IncludesExamples      bool     `json:"includes_examples"`
	EncouragesExploration bool     `json:"encourages_exploration"`
	MaxTokens             int      `json:"max_tokens"`
	Temperature           float64  `json:"temperature"`
	UsageCount            int64    `json:"usage_count"`
	AverageRating         float64  `json:"average_rating"`
	SuccessRate           float64  `json:"success_rate"`
	EffectivenessScore    float64  `json:"effectiveness_score"`
	Version               int      `json:"version"`
	IsActive              bool     `json:"is_active"`
}

// Query untuk GET /prompts/select
type SelectPromptRequest struct {
	Subject    string   `query:"subject" json:"subject" validate:"required,max=100"`
	InputType  string   `query:"input_type" json:"input_type" validate:"omitempty,oneof=text image voice any"`
	Difficulty string   `query:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	GradeLevel string   `query:"grade" json:"grade" validate:"omitempty,max=30"`
	Keywords   []string `query:"keywords" json:"keywords" validate:"omitempty,dive,max=50"`
}

// Query untuk GET /subjects/:name/prompts
type ListPromptsRequest struct {
	Difficulty string `query:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	InputType  string `query:"input_type" json:"input_type" validate:"omitempty,oneof=text image voice any"`
	GradeLevel string `query:"grade" json:"grade"`
	Keyword    string `query:"keyword" json:"keyword"`
	ActiveOnly bool   `query:"active_only" json:"active_only"`
}

type CreatePromptTemplateRequest struct {
	Subject               string   `json:"subject" validate:"required,max=100"`
	Title                 string   `json:"title" validate:"required,max=200"`
	TemplateText          string   `json:"template_text" validate:"required"`
	InputType             string   `json:"input_type" validate:"required,oneof=text image voice any"`
	Difficulty            string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	GradeLevels           []string `json:"grade_levels" validate:"omitempty,dive,max=30"`
	Keywords              []string `json:"keywords" validate:"omitempty,dive,max=50"`
	RequiresStepByStep    bool     `json:"requires_step_by_step"`
	IncludesExamples      bool     `json:"includes_examples"`
	EncouragesExploration bool     `json:"encourages_exploration"`
	MaxTokens             int      `json:"max_tokens" validate:"omitempty,min=64,max=16384"`
	Temperature           float64  `json:"temperature" validate:"omitempty,min=0,max=2"`
}

// Update konten template; statistik tidak bisa diubah lewat sini
type UpdatePromptTemplateRequest struct {
	Title                 *string   `json:"title" validate:"omitempty,max=200"`
	TemplateText          *string   `json:"template_text" validate:"omitempty,min=1"`
	InputType             *string   `json:"input_type" validate:"omitempty,oneof=text image voice any"`
	Difficulty            *string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	GradeLevels           *[]string `json:"grade_levels"`
	Keywords              *[]string `json:"keywords"`
	RequiresStepByStep    *bool     `json:"requires_step_by_step"`
	IncludesExamples      *bool     `json:"includes_examples"`
	EncouragesExploration *bool     `json:"encourages_exploration"`
	MaxTokens             *int      `json:"max_tokens" validate:"omitempty,min=64,max=16384"`
	Temperature           *float64  `json:"temperature" validate:"omitempty,min=0,max=2"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
