package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/sirupsen/logrus"
)

// SelectPrompt picks the best active template for a submission. Subject,
// active flag and input type (exact or "any") are hard filters; difficulty,
// grade and keywords narrow the set only while something survives. Returns
// nil when the subject has no usable template.
func (u *catalogUsecase) SelectPrompt(ctx context.Context, subject string, inputType entity.InputType, difficulty entity.Difficulty, gradeLevel string, keywords []string) (*internalEntity.PromptTemplate, error) {
	if inputType == "" {
		inputType = entity.InputTypeAny
	}
	if difficulty == "" {
		difficulty = entity.DifficultyMedium
	}

	candidates, err := u.cfg.Repository.FindSelectableTemplates(u.cfg.DB.WithContext(ctx), subject, string(inputType))
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		u.log().WithFields(logrus.Fields{
			"subject":    subject,
			"input_type": inputType,
		}).Debug("no prompt template matched")
		return nil, nil
	}

	candidates = applySoftFilters(candidates, difficulty, gradeLevel, keywords)
	ranked := RankTemplates(candidates, u.cfg.Shuffle)
	chosen := ranked[0]

	u.log().WithFields(logrus.Fields{
		"subject":       subject,
		"template_id":   chosen.ID,
		"effectiveness": chosen.EffectivenessScore,
		"usage_count":   chosen.UsageCount,
		"candidates":    len(ranked),
	}).Debug("prompt template selected")

	return &chosen, nil
}

func applySoftFilters(candidates []internalEntity.PromptTemplate, difficulty entity.Difficulty, gradeLevel string, keywords []string) []internalEntity.PromptTemplate {
	out := narrow(candidates, func(t internalEntity.PromptTemplate) bool {
		return t.Difficulty == string(difficulty)
	})

	if gradeLevel = strings.TrimSpace(gradeLevel); gradeLevel != "" {
		out = narrow(out, func(t internalEntity.PromptTemplate) bool {
			return containsFold(t.GradeLevels, gradeLevel)
		})
	}

	if len(keywords) > 0 {
		out = narrow(out, func(t internalEntity.PromptTemplate) bool {
			for _, k := range keywords {
				if containsFold(t.Keywords, strings.TrimSpace(k)) {
					return true
				}
			}
			return false
		})
	}

	return out
}

// narrow keeps the matching templates, or all of them if none match.
func narrow(in []internalEntity.PromptTemplate, keep func(internalEntity.PromptTemplate) bool) []internalEntity.PromptTemplate {
	out := make([]internalEntity.PromptTemplate, 0, len(in))
	for _, t := range in {
		if keep(t) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return in
	}
	return out
}

// RankTemplates orders by effectiveness (high first), then usage count (low
// first). The input is shuffled before the stable sort so remaining ties
// break randomly.
func RankTemplates(templates []internalEntity.PromptTemplate, shuffle func(n int, swap func(i, j int))) []internalEntity.PromptTemplate {
	out := slices.Clone(templates)
	if shuffle != nil {
		shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}

	slices.SortStableFunc(out, func(a, b internalEntity.PromptTemplate) int {
		if c := cmp.Compare(b.EffectivenessScore, a.EffectivenessScore); c != 0 {
			return c
		}
		return cmp.Compare(a.UsageCount, b.UsageCount)
	})
	return out
}

func containsFold(values []string, needle string) bool {
	if needle == "" {
		return false
	}
	for _, v := range values {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}
