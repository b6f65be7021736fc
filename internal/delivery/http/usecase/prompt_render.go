package usecase

import (
	"strings"

	internalEntity "github.com/evandrarf/learnquest-be/internal/entity"
)

type PromptVars struct {
	Input      string
	GradeLevel string
	Subject    string
	Difficulty string
}

// RenderPrompt fills the template placeholders and appends the behaviour
// directives switched on for the template.
func RenderPrompt(tpl *internalEntity.PromptTemplate, vars PromptVars) string {
	text := defaultPromptTemplate
	if tpl != nil {
		text = tpl.TemplateText
	}

	grade := vars.GradeLevel
	if grade == "" {
		grade = "general"
	}

	replacer := strings.NewReplacer(
		"{{input}}", vars.Input,
		"{{grade_level}}", grade,
		"{{subject}}", vars.Subject,
		"{{difficulty}}", vars.Difficulty,
	)
	prompt := replacer.Replace(text)

	if tpl == nil {
		return prompt
	}

	var directives []string
	if tpl.RequiresStepByStep {
		directives = append(directives, "Break the solution into numbered steps.")
	}
	if tpl.IncludesExamples {
		directives = append(directives, "Include a short worked example.")
	}
	if tpl.EncouragesExploration {
		directives = append(directives, "End with one question that invites the learner to explore further.")
	}
	if len(directives) > 0 {
		prompt = prompt + "\n\n" + strings.Join(directives, "\n")
	}
	return prompt
}

const defaultPromptTemplate = `You are a patient tutor helping a {{grade_level}} student with {{subject}}.
The problem is rated {{difficulty}}.

Problem:
{{input}}

Explain the reasoning clearly and check the final answer.`
